package budgeterrors

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
	ErrInvalidBudgetID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid budget id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"budget_period_start must be before or equal budget_period_end",
		http.StatusBadRequest,
	)
	ErrBudgetNotFound = apperror.New(
		apperror.CodeNotFound,
		"budget not found",
		http.StatusNotFound,
	)
	ErrNoPayableRecords = apperror.New(
		apperror.CodeInvalidState,
		"no pending or processed payroll records to aggregate",
		http.StatusUnprocessableEntity,
	)
	ErrApproverNotesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"approver notes are required when rejecting a budget",
		http.StatusBadRequest,
	)
)
