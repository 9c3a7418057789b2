package leaveerrors

import (
	"net/http"

	"github.com/uratMeds/LMS-API/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave request overlaps an existing request for this employee",
		http.StatusConflict,
	)
	ErrAnnualQuotaExceeded = apperror.New(
		apperror.CodeConflict,
		"annual leave quota of 20 days exceeded for this year",
		http.StatusConflict,
	)
	ErrMissingReason = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required for sick leave",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave requests can be approved",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"leave_type must be one of Annual, Sick, Other",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of Pending, Approved, Rejected",
		http.StatusBadRequest,
	)
	ErrInvalidPagination = apperror.New(
		apperror.CodeInvalidInput,
		"page and page_size must be greater than zero",
		http.StatusBadRequest,
	)
)
