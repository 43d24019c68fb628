package recruitmenterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"application not found",
		http.StatusNotFound,
	)
	ErrApplicationExists = apperror.New(
		apperror.CodeConflict,
		"candidate already applied to this requisition",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"application status cannot change to the requested value",
		http.StatusBadRequest,
	)
	ErrOnboardingNotFound = apperror.New(
		apperror.CodeNotFound,
		"onboarding not found",
		http.StatusNotFound,
	)
	ErrOnboardingExists = apperror.New(
		apperror.CodeConflict,
		"employee already has an onboarding",
		http.StatusConflict,
	)
	ErrOnboardingTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"onboarding task not found",
		http.StatusNotFound,
	)
)
