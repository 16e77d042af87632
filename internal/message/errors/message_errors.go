package messageerrors

import (
	"net/http"

	"github.com/IwanSuryana77/PresenceApp/internal/shared/apperror"
)

var (
	ErrMessageNotFound = apperror.New(
		apperror.CodeNotFound,
		"message not found",
		http.StatusNotFound,
	)
	ErrRecipientOrGroup = apperror.New(
		apperror.CodeInvalidInput,
		"exactly one of recipientId or groupId is required",
		http.StatusBadRequest,
	)
)
