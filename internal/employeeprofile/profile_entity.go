package employeeprofile

import "time"

const (
	constraintWorkEmail  = "uq_employee_profiles_work_email"
	constraintNationalID = "uq_employee_profiles_national_id"
)

type EmployeeProfile struct {
	ID                  string         `gorm:"type:varchar(24);primaryKey"`
	EmployeeNumber      string         `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_profiles_number"`
	FirstName           string         `gorm:"type:varchar(100);not null"`
	LastName            string         `gorm:"type:varchar(100);not null"`
	NationalID          string         `gorm:"type:varchar(50);not null;uniqueIndex:uq_employee_profiles_national_id"`
	WorkEmail           string         `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_profiles_work_email"`
	DateOfHire          time.Time      `gorm:"type:date;not null"`
	Status              EmployeeStatus `gorm:"type:varchar(20);not null;index"`
	StatusEffectiveDate *time.Time     `gorm:"type:date"`

	MobilePhone   *string `gorm:"type:varchar(30)"`
	PersonalEmail *string `gorm:"type:varchar(255)"`
	City          *string `gorm:"type:varchar(100)"`
	StreetAddress *string `gorm:"type:varchar(255)"`
	Country       *string `gorm:"type:varchar(100)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProfileChangeRequest struct {
	ID                 string              `gorm:"type:varchar(24);primaryKey"`
	EmployeeProfileID  string              `gorm:"type:varchar(24);not null;index"`
	RequestDescription string              `gorm:"type:text;not null"`
	Reason             *string             `gorm:"type:text"`
	Status             ProfileChangeStatus `gorm:"type:varchar(20);not null;index"`
	ReviewerID         *string             `gorm:"type:varchar(24)"`
	ReviewComment      *string             `gorm:"type:text"`
	ProcessedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
