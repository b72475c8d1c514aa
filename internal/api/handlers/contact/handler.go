package contact

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShopAdmin/internal/api/handlers"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/notifications"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNoRecipients       = "не найдено ни одного администратора с номером телефона"
	msgSent               = "сообщение отправлено"
)

type Handler struct {
	notifier ContactNotifier
	logger   Logger
}

func NewHandler(notifier ContactNotifier, logger Logger) *Handler {
	return &Handler{
		notifier: notifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/contact
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contact - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if errs := handlers.Validate(req); errs != nil {
		handlers.RespondValidationError(w, handlers.MsgValidationFailed, errs)
		return
	}

	err := h.notifier.ContactAdmins(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrNoAdminRecipients):
			h.logger.Warn("POST /contact - No admin recipients")
			handlers.RespondValidationError(w, msgNoRecipients, handlers.FieldError("message", msgNoRecipients))
		default:
			h.logger.Error("POST /contact - Failed to contact admins: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /contact - Contact message sent: email=%s", req.Email)
	handlers.RespondMessage(w, http.StatusOK, msgSent, nil)
}
