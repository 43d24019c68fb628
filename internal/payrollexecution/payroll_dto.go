package payrollexecution

import (
	"go-hrms/internal/validation"
)

type CreatePayrollRunDto struct {
	PayrollPeriod       string `json:"payrollPeriod"`
	Entity              string `json:"entity"`
	PayrollSpecialistID string `json:"payrollSpecialistId"`
}

var CreatePayrollRunSchema = validation.NewSchema("CreatePayrollRunDto",
	validation.Required("payrollPeriod", validation.ISODate),
	validation.Required("entity", validation.NonEmptyString, validation.MaxLength(150)),
	validation.RequiredID("payrollSpecialistId"),
)

type SalaryCalculationInputDto struct {
	EmployeeID    string   `json:"employeeId"`
	PayrollRunID  string   `json:"payrollRunId"`
	BaseSalary    float64  `json:"baseSalary"`
	Allowances    *float64 `json:"allowances,omitempty"`
	OvertimeHours *float64 `json:"overtimeHours,omitempty"`
	OvertimeRate  *float64 `json:"overtimeRate,omitempty"`
	Deductions    *float64 `json:"deductions,omitempty"`
	Penalties     *float64 `json:"penalties,omitempty"`
	TaxRate       *float64 `json:"taxRate,omitempty"`
}

var SalaryCalculationInputSchema = validation.NewSchema("SalaryCalculationInputDto",
	validation.RequiredID("employeeId"),
	validation.RequiredID("payrollRunId"),
	validation.Required("baseSalary", validation.Min(0)),
	validation.Optional("allowances", validation.Min(0)),
	validation.Optional("overtimeHours", validation.Min(0)),
	validation.Optional("overtimeRate", validation.Min(0)),
	validation.Optional("deductions", validation.Min(0)),
	validation.Optional("penalties", validation.Min(0)),
	validation.Optional("taxRate", validation.Min(0), validation.Max(1)),
)

type HrChecksDto struct {
	EmployeeID    string      `json:"employeeId"`
	PayrollRunID  string      `json:"payrollRunId"`
	EventType     HrEventType `json:"eventType"`
	EffectiveDate *string     `json:"effectiveDate,omitempty"`
	Notes         *string     `json:"notes,omitempty"`
}

var HrChecksSchema = validation.NewSchema("HrChecksDto",
	validation.RequiredID("employeeId"),
	validation.RequiredID("payrollRunId"),
	validation.Required("eventType", validation.Enum(HrEventTypes)),
	validation.Optional("effectiveDate", validation.ISODate),
	validation.Optional("notes", validation.String, validation.MaxLength(1000)),
)

type ManagerDecisionDto struct {
	PayrollRunID string  `json:"payrollRunId"`
	Decision     string  `json:"decision"`
	Reason       *string `json:"reason,omitempty"`
	ManagerID    *string `json:"managerId,omitempty"`
}

var ManagerDecisionSchema = validation.NewSchema("ManagerDecisionDto",
	validation.RequiredID("payrollRunId"),
	validation.Required("decision", validation.OneOf(DecisionApprove, DecisionReject)),
	validation.Optional("reason", validation.String),
	validation.OptionalID("managerId"),
)

type FinanceDecisionDto struct {
	PayrollRunID   string  `json:"payrollRunId"`
	Decision       string  `json:"decision"`
	Reason         *string `json:"reason,omitempty"`
	FinanceStaffID *string `json:"financeStaffId,omitempty"`
}

var FinanceDecisionSchema = validation.NewSchema("FinanceDecisionDto",
	validation.RequiredID("payrollRunId"),
	validation.Required("decision", validation.OneOf(DecisionApprove, DecisionReject)),
	validation.Optional("reason", validation.String),
	validation.OptionalID("financeStaffId"),
)

type UnlockPayrollRunDto struct {
	UnlockReason string `json:"unlockReason"`
}

var UnlockPayrollRunSchema = validation.NewSchema("UnlockPayrollRunDto",
	validation.Required("unlockReason", validation.NonEmptyString),
)

type GeneratePayslipsDto struct {
	PayrollRunID string   `json:"payrollRunId"`
	EmployeeIDs  []string `json:"employeeIds,omitempty"`
}

var GeneratePayslipsSchema = validation.NewSchema("GeneratePayslipsDto",
	validation.RequiredID("payrollRunId"),
	validation.OptionalIDList("employeeIds", validation.MinItems(1)),
)

type ListPayrollRunsQuery struct {
	Status string `form:"status"`
	Entity string `form:"entity" binding:"omitempty,max=150"`
}

type PayrollRunResponse struct {
	ID                  string           `json:"id"`
	PayrollPeriod       string           `json:"payrollPeriod"`
	Entity              string           `json:"entity"`
	Status              PayrollRunStatus `json:"status"`
	PayrollSpecialistID string           `json:"payrollSpecialistId"`
	PayrollManagerID    *string          `json:"payrollManagerId,omitempty"`
	FinanceStaffID      *string          `json:"financeStaffId,omitempty"`
	EmployeeCount       int              `json:"employeeCount"`
	TotalGross          string           `json:"totalGross"`
	TotalTax            string           `json:"totalTax"`
	TotalNet            string           `json:"totalNet"`
	RejectionReason     *string          `json:"rejectionReason,omitempty"`
	UnlockReason        *string          `json:"unlockReason,omitempty"`
	ManagerApprovedAt   *string          `json:"managerApprovedAt,omitempty"`
	FinanceApprovedAt   *string          `json:"financeApprovedAt,omitempty"`
	LockedAt            *string          `json:"lockedAt,omitempty"`
	CreatedAt           string           `json:"createdAt"`
}

type PayrollEntryResponse struct {
	ID                   string      `json:"id"`
	PayrollRunID         string      `json:"payrollRunId"`
	EmployeeID           string      `json:"employeeId"`
	BaseSalary           string      `json:"baseSalary"`
	Allowances           string      `json:"allowances"`
	OvertimeHours        string      `json:"overtimeHours"`
	OvertimeRate         string      `json:"overtimeRate"`
	OvertimePay          string      `json:"overtimePay"`
	Deductions           string      `json:"deductions"`
	Penalties            string      `json:"penalties"`
	TaxRate              string      `json:"taxRate"`
	Tax                  string      `json:"tax"`
	GrossSalary          string      `json:"grossSalary"`
	NetSalary            string      `json:"netSalary"`
	NegativeNetClamped   bool        `json:"negativeNetClamped"`
	HrEventType          HrEventType `json:"hrEventType"`
	HrEventEffectiveDate *string     `json:"hrEventEffectiveDate,omitempty"`
	HrNotes              *string     `json:"hrNotes,omitempty"`
	RequiresReview       bool        `json:"requiresReview"`
}

type PayslipResponse struct {
	PayslipID       string               `json:"payslipId"`
	PayrollRunID    string               `json:"payrollRunId"`
	EmployeeID      string               `json:"employeeId"`
	GrossSalary     string               `json:"grossSalary"`
	TotalDeductions string               `json:"totalDeductions"`
	NetSalary       string               `json:"netSalary"`
	PaymentStatus   PayslipPaymentStatus `json:"paymentStatus"`
	PaidAt          *string              `json:"paidAt,omitempty"`
	RenderedAt      *string              `json:"renderedAt,omitempty"`
	CreatedAt       string               `json:"createdAt"`
}

// PayslipDocument is a rendered payslip ready to be streamed.
type PayslipDocument struct {
	Filename string
	Content  []byte
}
