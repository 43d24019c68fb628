package employeeprofile

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(dateLayout)
	return &v
}

func mapToProfileResponse(p EmployeeProfile) EmployeeProfileResponse {
	return EmployeeProfileResponse{
		ID:                  p.ID,
		EmployeeNumber:      p.EmployeeNumber,
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		FullName:            strings.TrimSpace(p.FirstName + " " + p.LastName),
		NationalID:          p.NationalID,
		WorkEmail:           p.WorkEmail,
		DateOfHire:          p.DateOfHire.Format(dateLayout),
		Status:              p.Status,
		StatusEffectiveDate: formatDate(p.StatusEffectiveDate),
		MobilePhone:         p.MobilePhone,
		PersonalEmail:       p.PersonalEmail,
		City:                p.City,
		StreetAddress:       p.StreetAddress,
		Country:             p.Country,
		CreatedAt:           p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToProfileListResponse(profiles []EmployeeProfile) []EmployeeProfileResponse {
	resp := make([]EmployeeProfileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = mapToProfileResponse(p)
	}
	return resp
}

func mapToChangeRequestResponse(r ProfileChangeRequest) ChangeRequestResponse {
	return ChangeRequestResponse{
		ID:                 r.ID,
		EmployeeProfileID:  r.EmployeeProfileID,
		RequestDescription: r.RequestDescription,
		Reason:             r.Reason,
		Status:             r.Status,
		ReviewerID:         r.ReviewerID,
		ReviewComment:      r.ReviewComment,
		ProcessedAt:        formatTime(r.ProcessedAt),
		CreatedAt:          r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToChangeRequestListResponse(requests []ProfileChangeRequest) []ChangeRequestResponse {
	resp := make([]ChangeRequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapToChangeRequestResponse(r)
	}
	return resp
}
