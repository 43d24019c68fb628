package leave

import "time"

type LeaveRequest struct {
	ID            string      `gorm:"type:varchar(24);primaryKey"`
	EmployeeID    string      `gorm:"type:varchar(24);not null;index:idx_leave_requests_employee_dates"`
	LeaveType     LeaveType   `gorm:"type:varchar(20);not null"`
	FromDate      time.Time   `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	ToDate        time.Time   `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	DurationDays  int         `gorm:"type:int;not null"`
	Justification *string     `gorm:"type:text"`
	AttachmentID  *string     `gorm:"type:varchar(24)"`
	Status        LeaveStatus `gorm:"type:varchar(20);not null;index:idx_leave_requests_status"`
	ReviewerID    *string     `gorm:"type:varchar(24)"`
	ReviewComment *string     `gorm:"type:text"`
	ReviewedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveEntitlement is the per employee, per leave type balance sheet.
type LeaveEntitlement struct {
	ID                string    `gorm:"type:varchar(24);primaryKey"`
	EmployeeID        string    `gorm:"type:varchar(24);not null;uniqueIndex:uq_leave_entitlements_employee_type"`
	LeaveType         LeaveType `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_entitlements_employee_type"`
	YearlyEntitlement float64   `gorm:"type:numeric(6,2);not null;default:0"`
	Adjusted          float64   `gorm:"type:numeric(6,2);not null;default:0"`
	Taken             float64   `gorm:"type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e LeaveEntitlement) Remaining() float64 {
	return e.YearlyEntitlement + e.Adjusted - e.Taken
}

type LeaveAdjustment struct {
	ID             string         `gorm:"type:varchar(24);primaryKey"`
	EmployeeID     string         `gorm:"type:varchar(24);not null;index"`
	LeaveType      LeaveType      `gorm:"type:varchar(20);not null"`
	AdjustmentType AdjustmentType `gorm:"type:varchar(20);not null"`
	Amount         float64        `gorm:"type:numeric(6,2);not null"`
	Reason         string         `gorm:"type:text;not null"`
	HRUserID       string         `gorm:"type:varchar(24);not null"`

	CreatedAt time.Time
}
