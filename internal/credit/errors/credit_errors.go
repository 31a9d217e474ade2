package crediterrors

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
	ErrInvalidLogsheetID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid logsheet id",
		http.StatusBadRequest,
	)
)
