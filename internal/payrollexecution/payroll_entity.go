package payrollexecution

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayrollRun struct {
	ID                  string           `gorm:"type:varchar(24);primaryKey"`
	PayrollPeriod       time.Time        `gorm:"type:date;not null;uniqueIndex:uq_payroll_runs_period_entity"`
	Entity              string           `gorm:"type:varchar(150);not null;uniqueIndex:uq_payroll_runs_period_entity"`
	Status              PayrollRunStatus `gorm:"type:varchar(30);not null;index"`
	PayrollSpecialistID string           `gorm:"type:varchar(24);not null"`
	PayrollManagerID    *string          `gorm:"type:varchar(24)"`
	FinanceStaffID      *string          `gorm:"type:varchar(24)"`

	EmployeeCount int             `gorm:"not null;default:0"`
	TotalGross    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalTax      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalNet      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	RejectionReason   *string `gorm:"type:text"`
	UnlockReason      *string `gorm:"type:text"`
	ManagerApprovedAt *time.Time
	FinanceApprovedAt *time.Time
	LockedAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayrollEntry is one employee's calculated salary inside a run.
type PayrollEntry struct {
	ID           string `gorm:"type:varchar(24);primaryKey"`
	PayrollRunID string `gorm:"type:varchar(24);not null;uniqueIndex:uq_payroll_entries_run_employee"`
	EmployeeID   string `gorm:"type:varchar(24);not null;uniqueIndex:uq_payroll_entries_run_employee"`

	BaseSalary    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Allowances    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	OvertimeRate  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OvertimePay   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Deductions    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Penalties     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TaxRate       decimal.Decimal `gorm:"type:numeric(5,4);not null;default:0"`
	Tax           decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	GrossSalary   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NetSalary     decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	NegativeNetClamped bool `gorm:"not null;default:false"`

	HrEventType          HrEventType `gorm:"type:varchar(20);not null;default:'normal'"`
	HrEventEffectiveDate *time.Time  `gorm:"type:date"`
	HrNotes              *string     `gorm:"type:text"`
	RequiresReview       bool        `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Payslip struct {
	ID              string          `gorm:"type:varchar(24);primaryKey"`
	PayrollRunID    string          `gorm:"type:varchar(24);not null;uniqueIndex:uq_payslips_run_employee"`
	EmployeeID      string          `gorm:"type:varchar(24);not null;uniqueIndex:uq_payslips_run_employee;index"`
	PayrollEntryID  string          `gorm:"type:varchar(24);not null"`
	GrossSalary     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NetSalary       decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	PaymentStatus PayslipPaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	PaidAt        *time.Time

	PDF        []byte `gorm:"type:bytea"`
	RenderedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
