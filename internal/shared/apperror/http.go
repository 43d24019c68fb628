package apperror

import (
	"errors"
	"net/http"

	"go-hrms/internal/validation"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP translates any error returned by a handler dependency into the
// response envelope fields. Unknown errors never leak their message.
func ToHTTP(err error) HTTPError {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return HTTPError{
			Status:  http.StatusBadRequest,
			Code:    CodeValidationError,
			Message: "Request validation failed",
			Details: verrs,
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "Internal server error",
	}
}
