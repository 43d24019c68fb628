package recruitment

import "go-hrms/internal/validation"

type CreateApplicationDto struct {
	CandidateID   string  `json:"candidateId"`
	RequisitionID string  `json:"requisitionId"`
	AssignedHRID  *string `json:"assignedHrId,omitempty"`
}

var CreateApplicationSchema = validation.NewSchema("CreateApplicationDto",
	validation.RequiredID("candidateId"),
	validation.RequiredID("requisitionId"),
	validation.OptionalID("assignedHrId"),
)

type UpdateApplicationStatusDto struct {
	Status    ApplicationStatus `json:"status"`
	ChangedBy string            `json:"changedBy"`
	Reason    *string           `json:"reason,omitempty"`
}

var UpdateApplicationStatusSchema = validation.NewSchema("UpdateApplicationStatusDto",
	validation.Required("status", validation.Enum(ApplicationStatuses)),
	validation.RequiredID("changedBy"),
	validation.Optional("reason", validation.String, validation.MaxLength(1000)),
)

type OnboardingTaskDto struct {
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Deadline   *string `json:"deadline,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

var OnboardingTaskSchema = validation.NewSchema("OnboardingTaskDto",
	validation.Required("name", validation.NonEmptyString, validation.MaxLength(200)),
	validation.Required("department", validation.NonEmptyString, validation.MaxLength(100)),
	validation.Optional("deadline", validation.ISODate),
	validation.Optional("notes", validation.String),
)

type CreateOnboardingDto struct {
	EmployeeID string              `json:"employeeId"`
	ContractID *string             `json:"contractId,omitempty"`
	Tasks      []OnboardingTaskDto `json:"tasks"`
}

var CreateOnboardingSchema = validation.NewSchema("CreateOnboardingDto",
	validation.RequiredID("employeeId"),
	validation.OptionalID("contractId"),
	validation.RequiredList("tasks", OnboardingTaskSchema, validation.MinItems(1)),
)

type UpdateOnboardingTaskDto struct {
	Status      OnboardingTaskStatus `json:"status"`
	CompletedAt *string              `json:"completedAt,omitempty"`
	DocumentID  *string              `json:"documentId,omitempty"`
	Notes       *string              `json:"notes,omitempty"`
}

var UpdateOnboardingTaskSchema = validation.NewSchema("UpdateOnboardingTaskDto",
	validation.Required("status", validation.Enum(OnboardingTaskStatuses)),
	validation.Optional("completedAt", validation.ISODate),
	validation.OptionalID("documentId"),
	validation.Optional("notes", validation.String),
)

type ListApplicationsQuery struct {
	CandidateID   string `form:"candidateId" binding:"omitempty,objectid"`
	RequisitionID string `form:"requisitionId" binding:"omitempty,objectid"`
	Status        string `form:"status"`
}

type ApplicationHistoryResponse struct {
	OldStatus *ApplicationStatus `json:"oldStatus,omitempty"`
	NewStatus ApplicationStatus  `json:"newStatus"`
	ChangedBy string             `json:"changedBy"`
	Reason    *string            `json:"reason,omitempty"`
	ChangedAt string             `json:"changedAt"`
}

type ApplicationResponse struct {
	ID            string                       `json:"id"`
	CandidateID   string                       `json:"candidateId"`
	RequisitionID string                       `json:"requisitionId"`
	AssignedHRID  *string                      `json:"assignedHrId,omitempty"`
	Status        ApplicationStatus            `json:"status"`
	History       []ApplicationHistoryResponse `json:"history,omitempty"`
	CreatedAt     string                       `json:"createdAt"`
	UpdatedAt     string                       `json:"updatedAt"`
}

type OnboardingTaskResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Department  string               `json:"department"`
	Status      OnboardingTaskStatus `json:"status"`
	Deadline    *string              `json:"deadline,omitempty"`
	CompletedAt *string              `json:"completedAt,omitempty"`
	DocumentID  *string              `json:"documentId,omitempty"`
	Notes       *string              `json:"notes,omitempty"`
}

type OnboardingResponse struct {
	ID          string                   `json:"id"`
	EmployeeID  string                   `json:"employeeId"`
	ContractID  *string                  `json:"contractId,omitempty"`
	Completed   bool                     `json:"completed"`
	CompletedAt *string                  `json:"completedAt,omitempty"`
	Tasks       []OnboardingTaskResponse `json:"tasks"`
	CreatedAt   string                   `json:"createdAt"`
}
