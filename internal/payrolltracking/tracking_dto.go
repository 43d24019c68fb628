package payrolltracking

import (
	"go-hrms/internal/validation"
)

type CreateClaimDto struct {
	EmployeeID  string  `json:"employeeId"`
	Description string  `json:"description"`
	ClaimType   string  `json:"claimType"`
	Amount      float64 `json:"amount"`
}

var CreateClaimSchema = validation.NewSchema("CreateClaimDto",
	validation.RequiredID("employeeId"),
	validation.Required("description", validation.NonEmptyString, validation.MaxLength(2000)),
	validation.Required("claimType", validation.NonEmptyString, validation.MaxLength(100)),
	validation.Required("amount", validation.Positive),
)

type CreateDisputeDto struct {
	EmployeeID  string `json:"employeeId"`
	PayslipID   string `json:"payslipId"`
	Description string `json:"description"`
}

var CreateDisputeSchema = validation.NewSchema("CreateDisputeDto",
	validation.RequiredID("employeeId"),
	validation.RequiredID("payslipId"),
	validation.Required("description", validation.NonEmptyString, validation.MaxLength(2000)),
)

type SpecialistReviewDto struct {
	Decision            string   `json:"decision"`
	PayrollSpecialistID string   `json:"payrollSpecialistId"`
	ApprovedAmount      *float64 `json:"approvedAmount,omitempty"`
	RejectionReason     *string  `json:"rejectionReason,omitempty"`
	ResolutionComment   *string  `json:"resolutionComment,omitempty"`
}

var SpecialistReviewSchema = validation.NewSchema("SpecialistReviewDto",
	validation.Required("decision", validation.OneOf(DecisionApprove, DecisionReject)),
	validation.RequiredID("payrollSpecialistId"),
	validation.Optional("approvedAmount", validation.Min(0)),
	validation.Optional("rejectionReason", validation.String),
	validation.Optional("resolutionComment", validation.String),
)

type ManagerConfirmationDto struct {
	Decision          string  `json:"decision"`
	PayrollManagerID  string  `json:"payrollManagerId"`
	RejectionReason   *string `json:"rejectionReason,omitempty"`
	ResolutionComment *string `json:"resolutionComment,omitempty"`
}

var ManagerConfirmationSchema = validation.NewSchema("ManagerConfirmationDto",
	validation.Required("decision", validation.OneOf(DecisionApprove, DecisionReject)),
	validation.RequiredID("payrollManagerId"),
	validation.Optional("rejectionReason", validation.String),
	validation.Optional("resolutionComment", validation.String),
)

type CreateRefundDto struct {
	FinanceStaffID string  `json:"financeStaffId"`
	Amount         float64 `json:"amount"`
	Description    *string `json:"description,omitempty"`
}

var CreateRefundSchema = validation.NewSchema("CreateRefundDto",
	validation.RequiredID("financeStaffId"),
	validation.Required("amount", validation.Positive),
	validation.Optional("description", validation.String, validation.MaxLength(2000)),
)

type ListQuery struct {
	EmployeeID string `form:"employeeId" binding:"omitempty,objectid"`
	Status     string `form:"status"`
}

type ClaimResponseDTO struct {
	ID                  string      `json:"id"`
	ClaimID             string      `json:"claimId"`
	Description         string      `json:"description"`
	ClaimType           string      `json:"claimType"`
	EmployeeID          string      `json:"employeeId"`
	Amount              float64     `json:"amount"`
	Status              ClaimStatus `json:"status"`
	PayrollSpecialistID *string     `json:"payrollSpecialistId,omitempty"`
	PayrollManagerID    *string     `json:"payrollManagerId,omitempty"`
	FinanceStaffID      *string     `json:"financeStaffId,omitempty"`
	ApprovedAmount      *float64    `json:"approvedAmount,omitempty"`
	RejectionReason     *string     `json:"rejectionReason,omitempty"`
	ResolutionComment   *string     `json:"resolutionComment,omitempty"`
	CreatedAt           string      `json:"createdAt"`
}

type DisputeResponseDTO struct {
	ID                  string        `json:"id"`
	DisputeID           string        `json:"disputeId"`
	Description         string        `json:"description"`
	EmployeeID          string        `json:"employeeId"`
	PayslipID           string        `json:"payslipId"`
	Status              DisputeStatus `json:"status"`
	PayrollSpecialistID *string       `json:"payrollSpecialistId,omitempty"`
	PayrollManagerID    *string       `json:"payrollManagerId,omitempty"`
	FinanceStaffID      *string       `json:"financeStaffId,omitempty"`
	RejectionReason     *string       `json:"rejectionReason,omitempty"`
	ResolutionComment   *string       `json:"resolutionComment,omitempty"`
	CreatedAt           string        `json:"createdAt"`
}

type RefundResponse struct {
	ID             string       `json:"id"`
	ClaimID        *string      `json:"claimId,omitempty"`
	DisputeID      *string      `json:"disputeId,omitempty"`
	EmployeeID     string       `json:"employeeId"`
	FinanceStaffID string       `json:"financeStaffId"`
	Amount         float64      `json:"amount"`
	Description    *string      `json:"description,omitempty"`
	Status         RefundStatus `json:"status"`
	PaidAt         *string      `json:"paidAt,omitempty"`
	CreatedAt      string       `json:"createdAt"`
}
