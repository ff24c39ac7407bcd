// Package queue defines message payloads exchanged over the message broker.
package queue

// Audit actions carried by AllocationAuditEvent.
const (
	ActionAllocated = "ALLOCATED"
	ActionDeleted   = "DELETED"
)

// AllocationAuditEvent is published whenever allocations are created or
// removed. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type AllocationAuditEvent struct {
	Action     string   `json:"action"`
	Kind       string   `json:"kind"`
	ExamKey    string   `json:"exam"`
	Person     string   `json:"person"`
	Role       string   `json:"role,omitempty"`
	Venues     []string `json:"venues"`
	Count      int      `json:"count"`
	OrderNo    string   `json:"order_no,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	OccurredAt string   `json:"occurred_at"`
}
