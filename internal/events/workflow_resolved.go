package events

import "time"

const (
	LeaveResolvedTopic         = "presence.leave.resolved.v1"
	ReimbursementResolvedTopic = "presence.reimbursement.resolved.v1"
)

// WorkflowResolvedEvent is emitted through the outbox whenever a leave or
// reimbursement request reaches Approved or Rejected. The notification
// consumer turns it into a system message for the requesting employee.
type WorkflowResolvedEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"` // e.g. leave.approved
	RequestID       string    `json:"request_id"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    string    `json:"employee_name"`
	Status          string    `json:"status"`
	ApprovedBy      string    `json:"approved_by"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
