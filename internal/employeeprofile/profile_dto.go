package employeeprofile

import "go-hrms/internal/validation"

type CreateEmployeeProfileDto struct {
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	NationalID string          `json:"nationalId"`
	WorkEmail  string          `json:"workEmail"`
	DateOfHire string          `json:"dateOfHire"`
	Status     *EmployeeStatus `json:"status,omitempty"`
}

var CreateEmployeeProfileSchema = validation.NewSchema("CreateEmployeeProfileDto",
	validation.Required("firstName", validation.NonEmptyString, validation.MaxLength(100)),
	validation.Required("lastName", validation.NonEmptyString, validation.MaxLength(100)),
	validation.Required("nationalId", validation.NonEmptyString, validation.MaxLength(50)),
	validation.Required("workEmail", validation.Email),
	validation.Required("dateOfHire", validation.ISODate),
	validation.Optional("status", validation.Enum(EmployeeStatuses)),
)

type UpdateContactInfoDto struct {
	MobilePhone   *string `json:"mobilePhone,omitempty"`
	PersonalEmail *string `json:"personalEmail,omitempty"`
	City          *string `json:"city,omitempty"`
	StreetAddress *string `json:"streetAddress,omitempty"`
	Country       *string `json:"country,omitempty"`
}

func (d UpdateContactInfoDto) empty() bool {
	return d.MobilePhone == nil && d.PersonalEmail == nil && d.City == nil &&
		d.StreetAddress == nil && d.Country == nil
}

var UpdateContactInfoSchema = validation.NewSchema("UpdateContactInfoDto",
	validation.Optional("mobilePhone", validation.String, validation.MaxLength(30)),
	validation.Optional("personalEmail", validation.Email),
	validation.Optional("city", validation.String, validation.MaxLength(100)),
	validation.Optional("streetAddress", validation.String, validation.MaxLength(255)),
	validation.Optional("country", validation.String, validation.MaxLength(100)),
)

type UpdateEmployeeStatusDto struct {
	Status        EmployeeStatus `json:"status"`
	EffectiveDate *string        `json:"effectiveDate,omitempty"`
}

var UpdateEmployeeStatusSchema = validation.NewSchema("UpdateEmployeeStatusDto",
	validation.Required("status", validation.Enum(EmployeeStatuses)),
	validation.Optional("effectiveDate", validation.ISODate),
)

type CreateProfileChangeRequestDto struct {
	EmployeeProfileID  string  `json:"employeeProfileId"`
	RequestDescription string  `json:"requestDescription"`
	Reason             *string `json:"reason,omitempty"`
}

var CreateProfileChangeRequestSchema = validation.NewSchema("CreateProfileChangeRequestDto",
	validation.RequiredID("employeeProfileId"),
	validation.Required("requestDescription", validation.NonEmptyString, validation.MaxLength(2000)),
	validation.Optional("reason", validation.String, validation.MaxLength(1000)),
)

type ProcessChangeRequestDto struct {
	Decision   string  `json:"decision"`
	ReviewerID *string `json:"reviewerId,omitempty"`
	Comment    *string `json:"comment,omitempty"`
}

var ProcessChangeRequestSchema = validation.NewSchema("ProcessChangeRequestDto",
	validation.Required("decision", validation.OneOf(DecisionApprove, DecisionReject)),
	validation.OptionalID("reviewerId"),
	validation.Optional("comment", validation.String),
)

type ListProfilesQuery struct {
	Status string `form:"status"`
}

type ListChangeRequestsQuery struct {
	EmployeeProfileID string `form:"employeeProfileId" binding:"omitempty,objectid"`
	Status            string `form:"status"`
}

type EmployeeProfileResponse struct {
	ID                  string         `json:"id"`
	EmployeeNumber      string         `json:"employeeNumber"`
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	FullName            string         `json:"fullName"`
	NationalID          string         `json:"nationalId"`
	WorkEmail           string         `json:"workEmail"`
	DateOfHire          string         `json:"dateOfHire"`
	Status              EmployeeStatus `json:"status"`
	StatusEffectiveDate *string        `json:"statusEffectiveDate,omitempty"`
	MobilePhone         *string        `json:"mobilePhone,omitempty"`
	PersonalEmail       *string        `json:"personalEmail,omitempty"`
	City                *string        `json:"city,omitempty"`
	StreetAddress       *string        `json:"streetAddress,omitempty"`
	Country             *string        `json:"country,omitempty"`
	CreatedAt           string         `json:"createdAt"`
	UpdatedAt           string         `json:"updatedAt"`
}

type ChangeRequestResponse struct {
	ID                 string              `json:"id"`
	EmployeeProfileID  string              `json:"employeeProfileId"`
	RequestDescription string              `json:"requestDescription"`
	Reason             *string             `json:"reason,omitempty"`
	Status             ProfileChangeStatus `json:"status"`
	ReviewerID         *string             `json:"reviewerId,omitempty"`
	ReviewComment      *string             `json:"reviewComment,omitempty"`
	ProcessedAt        *string             `json:"processedAt,omitempty"`
	CreatedAt          string              `json:"createdAt"`
}
