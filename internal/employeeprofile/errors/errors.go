package profileerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee profile not found",
		http.StatusNotFound,
	)
	ErrWorkEmailExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this work email already exists",
		http.StatusConflict,
	)
	ErrNationalIDExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this national id already exists",
		http.StatusConflict,
	)
	ErrProfileExists = apperror.New(
		apperror.CodeConflict,
		"employee profile already exists",
		http.StatusConflict,
	)
	ErrNoContactFields = apperror.New(
		apperror.CodeInvalidInput,
		"at least one contact field is required",
		http.StatusBadRequest,
	)
	ErrChangeRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"change request not found",
		http.StatusNotFound,
	)
	ErrChangeRequestNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending change requests can be processed or canceled",
		http.StatusBadRequest,
	)
)
