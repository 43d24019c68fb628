package recruitment

import "time"

type Application struct {
	ID            string            `gorm:"type:varchar(24);primaryKey"`
	CandidateID   string            `gorm:"type:varchar(24);not null;uniqueIndex:uq_applications_candidate_requisition"`
	RequisitionID string            `gorm:"type:varchar(24);not null;uniqueIndex:uq_applications_candidate_requisition"`
	AssignedHRID  *string           `gorm:"column:assigned_hr_id;type:varchar(24)"`
	Status        ApplicationStatus `gorm:"type:varchar(20);not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplicationStatusHistory is appended on creation and on every status change.
type ApplicationStatusHistory struct {
	ID            string             `gorm:"type:varchar(24);primaryKey"`
	ApplicationID string             `gorm:"type:varchar(24);not null;index"`
	OldStatus     *ApplicationStatus `gorm:"type:varchar(20)"`
	NewStatus     ApplicationStatus  `gorm:"type:varchar(20);not null"`
	ChangedBy     string             `gorm:"type:varchar(24);not null"`
	Reason        *string            `gorm:"type:text"`

	CreatedAt time.Time
}

func (ApplicationStatusHistory) TableName() string {
	return "application_status_history"
}

type Onboarding struct {
	ID          string  `gorm:"type:varchar(24);primaryKey"`
	EmployeeID  string  `gorm:"type:varchar(24);not null;uniqueIndex:uq_onboardings_employee"`
	ContractID  *string `gorm:"type:varchar(24)"`
	Completed   bool    `gorm:"not null;default:false"`
	CompletedAt *time.Time
	Tasks       []OnboardingTask `gorm:"foreignKey:OnboardingID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OnboardingTask struct {
	ID           string               `gorm:"type:varchar(24);primaryKey"`
	OnboardingID string               `gorm:"type:varchar(24);not null;index"`
	Position     int                  `gorm:"not null"`
	Name         string               `gorm:"type:varchar(200);not null"`
	Department   string               `gorm:"type:varchar(100);not null"`
	Status       OnboardingTaskStatus `gorm:"type:varchar(20);not null"`
	Deadline     *time.Time           `gorm:"type:date"`
	CompletedAt  *time.Time
	DocumentID   *string `gorm:"type:varchar(24)"`
	Notes        *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// allTasksCompleted is false for an onboarding without tasks.
func (o Onboarding) allTasksCompleted() bool {
	if len(o.Tasks) == 0 {
		return false
	}
	for _, t := range o.Tasks {
		if t.Status != TaskCompleted {
			return false
		}
	}
	return true
}
