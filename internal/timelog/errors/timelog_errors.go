package timelogerrors

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
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"requested action is not allowed from the current attendance status",
		http.StatusBadRequest,
	)
	ErrDayClosed = apperror.New(
		apperror.CodeInvalidState,
		"attendance for this day is already closed",
		http.StatusBadRequest,
	)
	ErrMalformedSequence = apperror.New(
		apperror.CodeInternalError,
		"attendance event sequence is inconsistent",
		http.StatusInternalServerError,
	)
)
