package reimbursementerrors

import (
	"net/http"

	"github.com/IwanSuryana77/PresenceApp/internal/shared/apperror"
)

var (
	ErrReimbursementNotFound = apperror.New(
		apperror.CodeNotFound,
		"reimbursement request not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must not be negative",
		http.StatusBadRequest,
	)
)
