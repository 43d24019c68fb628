package payrolltracking

import (
	"time"

	"github.com/shopspring/decimal"
)

type Claim struct {
	ID          string          `gorm:"type:varchar(24);primaryKey"`
	ClaimCode   string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	EmployeeID  string          `gorm:"type:varchar(24);not null;index"`
	Description string          `gorm:"type:text;not null"`
	ClaimType   string          `gorm:"type:varchar(100);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      ClaimStatus     `gorm:"type:varchar(40);not null;index"`

	PayrollSpecialistID *string          `gorm:"type:varchar(24)"`
	PayrollManagerID    *string          `gorm:"type:varchar(24)"`
	FinanceStaffID      *string          `gorm:"type:varchar(24)"`
	ApprovedAmount      *decimal.Decimal `gorm:"type:numeric(14,2)"`
	RejectionReason     *string          `gorm:"type:text"`
	ResolutionComment   *string          `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Dispute struct {
	ID          string        `gorm:"type:varchar(24);primaryKey"`
	DisputeCode string        `gorm:"type:varchar(20);not null;uniqueIndex"`
	EmployeeID  string        `gorm:"type:varchar(24);not null;index"`
	PayslipID   string        `gorm:"type:varchar(24);not null;index"`
	Description string        `gorm:"type:text;not null"`
	Status      DisputeStatus `gorm:"type:varchar(40);not null;index"`

	PayrollSpecialistID *string `gorm:"type:varchar(24)"`
	PayrollManagerID    *string `gorm:"type:varchar(24)"`
	FinanceStaffID      *string `gorm:"type:varchar(24)"`
	RejectionReason     *string `gorm:"type:text"`
	ResolutionComment   *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Refund pays out an approved claim or dispute; exactly one source is set.
type Refund struct {
	ID             string          `gorm:"type:varchar(24);primaryKey"`
	ClaimID        *string         `gorm:"type:varchar(24);uniqueIndex"`
	DisputeID      *string         `gorm:"type:varchar(24);uniqueIndex"`
	EmployeeID     string          `gorm:"type:varchar(24);not null;index"`
	FinanceStaffID string          `gorm:"type:varchar(24);not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description    *string         `gorm:"type:text"`
	Status         RefundStatus    `gorm:"type:varchar(20);not null;default:'pending'"`
	PaidAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
