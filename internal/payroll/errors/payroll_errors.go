package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPayrollID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"pay_period_start must be before or equal pay_period_end",
		http.StatusBadRequest,
	)
	ErrPayrollOverlap = apperror.New(
		apperror.CodeConflict,
		"a payroll record already exists for this employee in an overlapping period",
		http.StatusConflict,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll record not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll status",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"pay period contains no working days",
		http.StatusBadRequest,
	)
	ErrNegativeNetPay = apperror.New(
		apperror.CodeInvalidState,
		"computed net pay is negative",
		http.StatusUnprocessableEntity,
	)
	ErrDeleteReleased = apperror.New(
		apperror.CodeInvalidState,
		"a released payroll record cannot be deleted",
		http.StatusBadRequest,
	)
	ErrInvalidMoneyValue = apperror.New(
		apperror.CodeInvalidInput,
		"pay component values cannot be negative",
		http.StatusBadRequest,
	)
	ErrEmptyBatch = apperror.New(
		apperror.CodeInvalidInput,
		"at least one payroll id is required",
		http.StatusBadRequest,
	)
)
