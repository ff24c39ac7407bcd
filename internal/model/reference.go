package model

import "time"

// Reference is the administrative authorization (order and page
// citation) required before any allocation of a role within an exam.
// At most one live reference exists per (exam key, role); saving a new
// one replaces the old after an explicit operator choice.
type Reference struct {
	ExamKey   string    `json:"exam"`       // allocation_references.exam_key
	Role      string    `json:"role"`       // allocation_references.role
	OrderNo   string    `json:"order_no"`   // allocation_references.order_no
	PageNo    string    `json:"page_no"`    // allocation_references.page_no
	Remarks   string    `json:"remarks"`    // allocation_references.remarks
	CreatedAt time.Time `json:"created_at"` // allocation_references.created_at
}
