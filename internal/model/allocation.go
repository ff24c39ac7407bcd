package model

import "time"

// Role labels for coordinator-kind allocations.  Centre Coordinators
// are exclusive per (date, shift); Flying Squad officers move between
// venues and are deliberately exempt from that exclusivity.
const (
	RoleCentreCoordinator = "Centre Coordinator"
	RoleFlyingSquad       = "Flying Squad"
	RoleEYPersonnel       = "EY Personnel"
)

// ValidIORole reports whether role is an accepted coordinator-kind role.
func ValidIORole(role string) bool {
	return role == RoleCentreCoordinator || role == RoleFlyingSquad
}

// Allocation is one coordinator/flying-squad assignment of a person to
// a (venue, date, shift).  The authorization fields are snapshots of
// the reference that gated the allocation; later reference edits never
// touch existing rows.
//
// Fields:
//  ID        – stable row identifier, used for deletion targeting.
//  SerialNo  – 1-based position in the exam's listing.  Display only;
//              recomputed on every listing and not stable across
//              removals.
//  MockTest  – marks a rehearsal exam; changes the remuneration rate.
type Allocation struct {
	ID               uint64    `json:"id"`                // io_allocations.id
	SerialNo         int       `json:"sl_no"`             // computed, not persisted
	ExamKey          string    `json:"exam"`              // io_allocations.exam_key
	Venue            string    `json:"venue"`             // io_allocations.venue
	Date             string    `json:"date"`              // io_allocations.slot_date (dd-mm-yyyy)
	Shift            string    `json:"shift"`             // io_allocations.shift
	PersonName       string    `json:"io_name"`           // io_allocations.person_name
	Area             string    `json:"area"`              // io_allocations.area
	Role             string    `json:"role"`              // io_allocations.role
	MockTest         bool      `json:"mock_test"`         // io_allocations.mock_test
	OrderNo          string    `json:"order_no"`          // io_allocations.order_no
	PageNo           string    `json:"page_no"`           // io_allocations.page_no
	ReferenceRemarks string    `json:"reference_remarks"` // io_allocations.reference_remarks
	CreatedAt        time.Time `json:"created_at"`        // io_allocations.created_at
}

// EYAllocation is one EY observer assignment.  Contact fields are
// copied from the EY roster at allocation time, and the per-day rate
// in force is snapshotted alongside the reference fields.  MockTest is
// always false for EY rows.
type EYAllocation struct {
	ID               uint64    `json:"id"`                // ey_allocations.id
	SerialNo         int       `json:"sl_no"`             // computed, not persisted
	ExamKey          string    `json:"exam"`              // ey_allocations.exam_key
	Venue            string    `json:"venue"`             // ey_allocations.venue
	Date             string    `json:"date"`              // ey_allocations.slot_date (dd-mm-yyyy)
	Shift            string    `json:"shift"`             // ey_allocations.shift
	PersonName       string    `json:"ey_personnel"`      // ey_allocations.person_name
	Mobile           string    `json:"mobile"`            // ey_allocations.mobile
	Email            string    `json:"email"`             // ey_allocations.email
	IDNumber         string    `json:"id_number"`         // ey_allocations.id_number
	Designation      string    `json:"designation"`       // ey_allocations.designation
	Department       string    `json:"department"`        // ey_allocations.department
	MockTest         bool      `json:"mock_test"`         // ey_allocations.mock_test (always false)
	Rate             uint32    `json:"rate"`              // ey_allocations.rate
	OrderNo          string    `json:"order_no"`          // ey_allocations.order_no
	PageNo           string    `json:"page_no"`           // ey_allocations.page_no
	ReferenceRemarks string    `json:"reference_remarks"` // ey_allocations.reference_remarks
	CreatedAt        time.Time `json:"created_at"`        // ey_allocations.created_at
}
