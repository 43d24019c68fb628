package events

import "time"

const PayslipRequestedTopic = "hr.payroll.payslip.requested.v1"

const EventTypePayslipRequested = "payslip_requested"

type PayslipRequestedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	PayslipID    string    `json:"payslip_id"`
	PayrollRunID string    `json:"payroll_run_id"`
	EmployeeID   string    `json:"employee_id"`
	RequestedBy  string    `json:"requested_by,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
