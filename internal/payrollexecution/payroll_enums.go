package payrollexecution

import "go-hrms/internal/shared/enum"

type PayrollRunStatus string

const (
	RunStatusDraft                  PayrollRunStatus = "draft"
	RunStatusUnderReview            PayrollRunStatus = "under review"
	RunStatusPendingFinanceApproval PayrollRunStatus = "pending finance approval"
	RunStatusRejected               PayrollRunStatus = "rejected"
	RunStatusApproved               PayrollRunStatus = "approved"
	RunStatusLocked                 PayrollRunStatus = "locked"
	RunStatusUnlocked               PayrollRunStatus = "unlocked"
)

var PayrollRunStatuses = enum.New("PayrollRunStatus",
	RunStatusDraft,
	RunStatusUnderReview,
	RunStatusPendingFinanceApproval,
	RunStatusRejected,
	RunStatusApproved,
	RunStatusLocked,
	RunStatusUnlocked,
)

// Editable reports whether entries of a run in this status may still change.
func (s PayrollRunStatus) Editable() bool {
	return s == RunStatusDraft || s == RunStatusRejected || s == RunStatusUnlocked
}

type PayslipPaymentStatus string

const (
	PaymentPending PayslipPaymentStatus = "pending"
	PaymentPaid    PayslipPaymentStatus = "paid"
)

var PayslipPaymentStatuses = enum.New("PayslipPaymentStatus", PaymentPending, PaymentPaid)

type HrEventType string

const (
	HrEventNormal       HrEventType = "normal"
	HrEventNewHire      HrEventType = "new_hire"
	HrEventResignation  HrEventType = "resignation"
	HrEventTermination  HrEventType = "termination"
	HrEventProbationEnd HrEventType = "probation_end"
)

var HrEventTypes = enum.New("HrEventType",
	HrEventNormal, HrEventNewHire, HrEventResignation, HrEventTermination, HrEventProbationEnd,
)

// RequiresReview is true for every event other than normal.
func (e HrEventType) RequiresReview() bool {
	return e != HrEventNormal
}

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)
