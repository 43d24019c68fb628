package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EventTypeEmployeeProfileCreated = "employee_profile_created"
	EventTypeEmployeeStatusChanged  = "employee_status_changed"
)

// EmployeeLifecycleEvent is published whenever a profile is created or its
// employment status changes.
type EmployeeLifecycleEvent struct {
	EventType         string    `json:"event_type"`
	RequestID         string    `json:"request_id,omitempty"`
	EmployeeProfileID string    `json:"employee_profile_id"`
	Status            string    `json:"status"`
	PreviousStatus    string    `json:"previous_status,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}
