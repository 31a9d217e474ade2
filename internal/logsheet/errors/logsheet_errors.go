package logsheeterrors

import (
	"net/http"

	"go-worklog/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidManagerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid manager id",
		http.StatusBadRequest,
	)
	ErrInvalidLogsheetID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid logsheet id",
		http.StatusBadRequest,
	)
	ErrJiraKeyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"jira_key is required",
		http.StatusBadRequest,
	)
	ErrDayNotClosed = apperror.New(
		apperror.CodeInvalidState,
		"the day must be checked out before submitting a logsheet",
		http.StatusBadRequest,
	)
	ErrAlreadySubmitted = apperror.New(
		apperror.CodeConflict,
		"a logsheet for this day has already been submitted",
		http.StatusConflict,
	)
	ErrLogsheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"logsheet not found",
		http.StatusNotFound,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"this logsheet has already been decided",
		http.StatusConflict,
	)
	ErrInvalidCredit = apperror.New(
		apperror.CodeInvalidInput,
		"work_day_credit must be 0.5 or 1.0",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"action must be approve or reject",
		http.StatusBadRequest,
	)
)
