package payments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShopAdmin/internal/api/handlers"
	"github.com/m04kA/SMC-ShopAdmin/internal/api/middleware"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/payments"
)

const (
	msgInvalidPaymentID   = "некорректный ID оплаты"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "оплата не найдена"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "доступ запрещен: бронирование принадлежит другому пользователю"
	msgBookingCancelled   = "нельзя оплатить отмененное бронирование"
	msgDuplicateReference = "номер референса уже использован"
	msgSubmitted          = "оплата отправлена на проверку"
	msgCreated            = "оплата создана"
	msgUpdated            = "оплата обновлена"
	msgDeleted            = "оплата удалена"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Submit POST /api/v1/payments
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreatePaymentRequest
	if !h.decode(w, r, "POST /payments", &req) {
		return
	}

	payment, err := h.service.Submit(r.Context(), userID, req.toServiceRequest())
	if err != nil {
		h.respondServiceError(w, r, "POST /payments", err)
		return
	}

	h.logger.Info("POST /payments - Payment submitted: payment_id=%d, booking_id=%d, user_id=%d", payment.ID, payment.BookingID, userID)
	handlers.RespondMessage(w, http.StatusCreated, msgSubmitted, payment)
}

// List GET /api/v1/admin/payments?search=&page=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), handlers.SearchFromQuery(r), handlers.PageFromQuery(r))
	if err != nil {
		h.logger.Error("GET /admin/payments - Failed to list payments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondPage(w, result.Payments, result.Pagination)
}

// Get GET /api/v1/admin/payments/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paymentID(w, r, "GET /admin/payments/{id}")
	if !ok {
		return
	}

	payment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, "GET /admin/payments/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, payment)
}

// Create POST /api/v1/admin/payments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if !h.decode(w, r, "POST /admin/payments", &req) {
		return
	}

	payment, err := h.service.Create(r.Context(), req.toServiceRequest())
	if err != nil {
		h.respondServiceError(w, r, "POST /admin/payments", err)
		return
	}

	h.logger.Info("POST /admin/payments - Payment created: payment_id=%d", payment.ID)
	handlers.RespondMessage(w, http.StatusCreated, msgCreated, payment)
}

// Update PUT /api/v1/admin/payments/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paymentID(w, r, "PUT /admin/payments/{id}")
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if !h.decode(w, r, "PUT /admin/payments/{id}", &req) {
		return
	}

	payment, err := h.service.Update(r.Context(), id, req.toServiceRequest())
	if err != nil {
		h.respondServiceError(w, r, "PUT /admin/payments/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/payments/{id} - Payment updated: payment_id=%d, status=%s", id, payment.Status)
	handlers.RespondMessage(w, http.StatusOK, msgUpdated, payment)
}

// Delete DELETE /api/v1/admin/payments/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paymentID(w, r, "DELETE /admin/payments/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, "DELETE /admin/payments/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/payments/{id} - Payment deleted: payment_id=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted, nil)
}

func (h *Handler) paymentID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid payment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, dst interface{}) bool {
	if err := handlers.DecodeJSON(r, dst); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	if errs := handlers.Validate(dst); errs != nil {
		handlers.RespondValidationError(w, handlers.MsgValidationFailed, errs)
		return false
	}
	return true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, route string, err error) {
	switch {
	case errors.Is(err, payments.ErrPaymentNotFound):
		h.logger.Warn("%s - Payment not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, payments.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found", route)
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, payments.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, payments.ErrBookingCancelled):
		h.logger.Warn("%s - Booking cancelled", route)
		handlers.RespondValidationError(w, msgBookingCancelled, handlers.FieldError("bookingId", msgBookingCancelled))

	case errors.Is(err, payments.ErrDuplicateReference):
		h.logger.Warn("%s - Duplicate reference number", route)
		handlers.RespondConflict(w, msgDuplicateReference)

	case errors.Is(err, payments.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Internal error (request_id=%s): %v", route, middleware.GetRequestID(r.Context()), err)
		handlers.RespondInternalError(w)
	}
}
