package leave

import (
	"go-hrms/internal/validation"
)

type CreateLeaveRequestDto struct {
	EmployeeID    string    `json:"employeeId"`
	LeaveType     LeaveType `json:"leaveType"`
	FromDate      string    `json:"fromDate"`
	ToDate        string    `json:"toDate"`
	Justification *string   `json:"justification,omitempty"`
	AttachmentID  *string   `json:"attachmentId,omitempty"`
}

var CreateLeaveRequestSchema = validation.NewSchema("CreateLeaveRequestDto",
	validation.RequiredID("employeeId"),
	validation.Required("leaveType", validation.Enum(LeaveTypes)),
	validation.Required("fromDate", validation.ISODate),
	validation.Required("toDate", validation.ISODate),
	validation.Optional("justification", validation.String, validation.MaxLength(1000)),
	validation.OptionalID("attachmentId"),
)

type ReviewLeaveRequestDto struct {
	Decision   string  `json:"decision"`
	ReviewerID *string `json:"reviewerId,omitempty"`
	Comment    *string `json:"comment,omitempty"`
}

var ReviewLeaveRequestSchema = validation.NewSchema("ReviewLeaveRequestDto",
	validation.Required("decision", validation.OneOf(DecisionApprove, DecisionReject)),
	validation.OptionalID("reviewerId"),
	validation.Optional("comment", validation.String),
)

type CreateLeaveAdjustmentDto struct {
	EmployeeID     string         `json:"employeeId"`
	LeaveType      LeaveType      `json:"leaveType"`
	AdjustmentType AdjustmentType `json:"adjustmentType"`
	Amount         float64        `json:"amount"`
	Reason         string         `json:"reason"`
	HRUserID       string         `json:"hrUserId"`
}

var CreateLeaveAdjustmentSchema = validation.NewSchema("CreateLeaveAdjustmentDto",
	validation.RequiredID("employeeId"),
	validation.Required("leaveType", validation.Enum(LeaveTypes)),
	validation.Required("adjustmentType", validation.Enum(AdjustmentTypes)),
	validation.Required("amount", validation.Positive),
	validation.Required("reason", validation.NonEmptyString),
	validation.RequiredID("hrUserId"),
)

type CreateLeaveEntitlementDto struct {
	EmployeeID        string    `json:"employeeId"`
	LeaveType         LeaveType `json:"leaveType"`
	YearlyEntitlement float64   `json:"yearlyEntitlement"`
}

var CreateLeaveEntitlementSchema = validation.NewSchema("CreateLeaveEntitlementDto",
	validation.RequiredID("employeeId"),
	validation.Required("leaveType", validation.Enum(LeaveTypes)),
	validation.Required("yearlyEntitlement", validation.Min(0)),
)

type ListLeaveRequestsQuery struct {
	EmployeeID string `form:"employeeId" binding:"omitempty,objectid"`
	Status     string `form:"status"`
}

type LeaveRequestResponse struct {
	ID            string      `json:"id"`
	EmployeeID    string      `json:"employeeId"`
	LeaveType     LeaveType   `json:"leaveType"`
	FromDate      string      `json:"fromDate"`
	ToDate        string      `json:"toDate"`
	DurationDays  int         `json:"durationDays"`
	Justification *string     `json:"justification,omitempty"`
	AttachmentID  *string     `json:"attachmentId,omitempty"`
	Status        LeaveStatus `json:"status"`
	ReviewerID    *string     `json:"reviewerId,omitempty"`
	ReviewComment *string     `json:"reviewComment,omitempty"`
	ReviewedAt    *string     `json:"reviewedAt,omitempty"`
	CreatedAt     string      `json:"createdAt"`
}

type LeaveBalanceResponse struct {
	EmployeeID        string    `json:"employeeId"`
	LeaveType         LeaveType `json:"leaveType"`
	YearlyEntitlement float64   `json:"yearlyEntitlement"`
	Adjusted          float64   `json:"adjusted"`
	Taken             float64   `json:"taken"`
	Remaining         float64   `json:"remaining"`
}

type LeaveAdjustmentResponse struct {
	ID             string               `json:"id"`
	EmployeeID     string               `json:"employeeId"`
	LeaveType      LeaveType            `json:"leaveType"`
	AdjustmentType AdjustmentType       `json:"adjustmentType"`
	Amount         float64              `json:"amount"`
	Reason         string               `json:"reason"`
	HRUserID       string               `json:"hrUserId"`
	Balance        LeaveBalanceResponse `json:"balance"`
	CreatedAt      string               `json:"createdAt"`
}
