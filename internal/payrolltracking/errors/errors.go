package trackingerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrClaimNotFound = apperror.New(
		apperror.CodeNotFound,
		"claim not found",
		http.StatusNotFound,
	)
	ErrDisputeNotFound = apperror.New(
		apperror.CodeNotFound,
		"dispute not found",
		http.StatusNotFound,
	)
	ErrRefundNotFound = apperror.New(
		apperror.CodeNotFound,
		"refund not found",
		http.StatusNotFound,
	)
	ErrPayslipNotOwned = apperror.New(
		apperror.CodeInvalidInput,
		"payslip does not belong to the employee",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"current status does not allow this action",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejectionReason is required when rejecting",
		http.StatusBadRequest,
	)
	ErrApprovedAmountTooHigh = apperror.New(
		apperror.CodeInvalidInput,
		"approvedAmount cannot exceed the claimed amount",
		http.StatusBadRequest,
	)
	ErrRefundNotAllowed = apperror.New(
		apperror.CodeInvalidState,
		"refunds can only be issued for approved items",
		http.StatusBadRequest,
	)
	ErrRefundExists = apperror.New(
		apperror.CodeConflict,
		"a refund already exists for this item",
		http.StatusConflict,
	)
	ErrRefundExceedsApproved = apperror.New(
		apperror.CodeInvalidInput,
		"refund amount cannot exceed the approved amount",
		http.StatusBadRequest,
	)
	ErrRefundAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"refund is already paid",
		http.StatusBadRequest,
	)
)
