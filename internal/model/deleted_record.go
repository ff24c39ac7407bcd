package model

import "time"

// Deleted-record kind discriminators.
const (
	DeletedKindIO = "IO"
	DeletedKindEY = "EY Personnel"
)

// DeletedRecord is a copy of a removed allocation (either kind) plus
// the deletion provenance the operator supplied.  The log is
// append-only and is only ever emptied by an explicit bulk clear.
type DeletedRecord struct {
	ID               uint64    `json:"id"`                 // deleted_records.id
	Kind             string    `json:"type"`               // deleted_records.kind (IO | EY Personnel)
	ExamKey          string    `json:"exam"`               // deleted_records.exam_key
	Venue            string    `json:"venue"`              // deleted_records.venue
	Date             string    `json:"date"`               // deleted_records.slot_date
	Shift            string    `json:"shift"`              // deleted_records.shift
	PersonName       string    `json:"name"`               // deleted_records.person_name
	Area             string    `json:"area,omitempty"`     // deleted_records.area (IO only)
	Role             string    `json:"role,omitempty"`     // deleted_records.role (IO only)
	MockTest         bool      `json:"mock_test"`          // deleted_records.mock_test
	Rate             uint32    `json:"rate,omitempty"`     // deleted_records.rate (EY only)
	OrderNo          string    `json:"order_no"`           // deleted_records.order_no
	PageNo           string    `json:"page_no"`            // deleted_records.page_no
	ReferenceRemarks string    `json:"reference_remarks"`  // deleted_records.reference_remarks
	DeletionReason   string    `json:"deletion_reason"`    // deleted_records.deletion_reason
	DeletionOrderNo  string    `json:"deletion_order_no"`  // deleted_records.deletion_order_no
	DeletedAt        time.Time `json:"deletion_timestamp"` // deleted_records.deleted_at
}
