package payrollerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrPayrollRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrPayrollRunExists = apperror.New(
		apperror.CodeConflict,
		"a payroll run already exists for this period and entity",
		http.StatusConflict,
	)
	ErrPayrollRunNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"payroll run entries can only change while the run is draft, rejected or unlocked",
		http.StatusBadRequest,
	)
	ErrInvalidRunTransition = apperror.New(
		apperror.CodeInvalidState,
		"payroll run status does not allow this action",
		http.StatusBadRequest,
	)
	ErrPayrollRunEmpty = apperror.New(
		apperror.CodeInvalidState,
		"payroll run has no calculated entries",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required when rejecting a payroll run",
		http.StatusBadRequest,
	)
	ErrPayrollEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll entry not found for employee",
		http.StatusNotFound,
	)
	ErrPayslipsNotAllowed = apperror.New(
		apperror.CodeInvalidState,
		"payslips can only be generated for approved or locked payroll runs",
		http.StatusBadRequest,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrPayslipAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"payslip is already paid",
		http.StatusBadRequest,
	)
	ErrInvalidPayrollPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"payrollPeriod is invalid",
		http.StatusBadRequest,
	)
)
