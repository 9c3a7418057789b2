package employeeerrors

import (
	"net/http"

	"github.com/uratMeds/LMS-API/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidJoiningDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid joining_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
