package bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShopAdmin/internal/api/handlers"
	"github.com/m04kA/SMC-ShopAdmin/internal/api/middleware"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/bookings"
	createBooking "github.com/m04kA/SMC-ShopAdmin/internal/usecase/create_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgAccessDenied       = "доступ запрещен: бронирование принадлежит другому пользователю"
	msgCannotCancel       = "отменить можно только ожидающее бронирование"
	msgInvalidTransition  = "недопустимая смена статуса бронирования"
	msgBookingNumberTaken = "номер бронирования уже занят"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для бронирования"
	msgUserNotFound       = "клиент не найден"
	msgReferenceNotFound  = "клиент или услуга не найдены"
	msgDateInPast         = "дата бронирования должна быть в будущем"
	msgCreated            = "бронирование создано"
	msgBooked             = "заявка на бронирование принята"
	msgUpdated            = "бронирование обновлено"
	msgDeleted            = "бронирование удалено"
	msgCancelled          = "бронирование отменено"
)

type Handler struct {
	service BookingService
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(service BookingService, useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		service: service,
		useCase: useCase,
		logger:  logger,
	}
}

// List GET /api/v1/admin/bookings?search=&page=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), handlers.SearchFromQuery(r), handlers.PageFromQuery(r))
	if err != nil {
		h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondPage(w, result.Bookings, result.Pagination)
}

// Get GET /api/v1/admin/bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookingID(w, r, "GET /admin/bookings/{id}")
	if !ok {
		return
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, "GET /admin/bookings/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}

// Create POST /api/v1/admin/bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req AdminBookingRequest
	if !h.decode(w, r, "POST /admin/bookings", &req) {
		return
	}

	resp, err := h.useCase.CreateByAdmin(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		h.respondCreateError(w, r, "POST /admin/bookings", err)
		return
	}

	h.logger.Info("POST /admin/bookings - Booking created: booking_id=%d, number=%d", resp.ID, resp.BookingNumber)
	handlers.RespondMessage(w, http.StatusCreated, msgCreated, FromUseCaseResponse(resp))
}

// Update PUT /api/v1/admin/bookings/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookingID(w, r, "PUT /admin/bookings/{id}")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if !h.decode(w, r, "PUT /admin/bookings/{id}", &req) {
		return
	}

	booking, err := h.service.Update(r.Context(), id, req.ToServiceRequest())
	if err != nil {
		h.respondServiceError(w, r, "PUT /admin/bookings/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/bookings/{id} - Booking updated: booking_id=%d, status=%s", id, booking.Status)
	handlers.RespondMessage(w, http.StatusOK, msgUpdated, booking)
}

// Delete DELETE /api/v1/admin/bookings/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookingID(w, r, "DELETE /admin/bookings/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, "DELETE /admin/bookings/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id} - Booking deleted: booking_id=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted, nil)
}

// BookNow POST /api/v1/bookings/book-now
func (h *Handler) BookNow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookNowRequest
	if !h.decode(w, r, "POST /bookings/book-now", &req) {
		return
	}

	resp, err := h.useCase.BookNow(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		h.respondCreateError(w, r, "POST /bookings/book-now", err)
		return
	}

	h.logger.Info("POST /bookings/book-now - Booking created: booking_id=%d, number=%d, user_id=%d", resp.ID, resp.BookingNumber, userID)
	handlers.RespondMessage(w, http.StatusCreated, msgBooked, FromUseCaseResponse(resp))
}

// MyBookings GET /api/v1/me/bookings
func (h *Handler) MyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	list, err := h.service.MyBookings(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /me/bookings - Failed to list bookings: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Cancel PATCH /api/v1/me/bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, ok := h.bookingID(w, r, "PATCH /me/bookings/{id}/cancel")
	if !ok {
		return
	}

	booking, err := h.service.CancelByUser(r.Context(), id, userID)
	if err != nil {
		h.respondServiceError(w, r, "PATCH /me/bookings/{id}/cancel", err)
		return
	}

	h.logger.Info("PATCH /me/bookings/{id}/cancel - Booking cancelled: booking_id=%d, user_id=%d", id, userID)
	handlers.RespondMessage(w, http.StatusOK, msgCancelled, booking)
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
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
		h.logger.Warn("%s - Validation failed: %v", route, errs)
		handlers.RespondValidationError(w, handlers.MsgValidationFailed, errs)
		return false
	}
	return true
}

func (h *Handler) respondCreateError(w http.ResponseWriter, r *http.Request, route string, err error) {
	switch {
	case errors.Is(err, createBooking.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrUserNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, createBooking.ErrServiceInactive):
		h.logger.Warn("%s - Service inactive", route)
		handlers.RespondValidationError(w, msgServiceInactive, handlers.FieldError("serviceId", msgServiceInactive))

	case errors.Is(err, createBooking.ErrInvalidDate):
		h.logger.Warn("%s - Scheduled time in the past", route)
		handlers.RespondValidationError(w, msgDateInPast, handlers.FieldError("scheduledAt", msgDateInPast))

	case errors.Is(err, createBooking.ErrBookingNumberTaken):
		h.logger.Warn("%s - Booking number taken", route)
		handlers.RespondConflict(w, msgBookingNumberTaken)

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Internal error (request_id=%s): %v", route, middleware.GetRequestID(r.Context()), err)
		handlers.RespondInternalError(w)
	}
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, route string, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, bookings.ErrCannotCancel):
		h.logger.Warn("%s - Booking cannot be cancelled", route)
		handlers.RespondValidationError(w, msgCannotCancel, handlers.FieldError("status", msgCannotCancel))

	case errors.Is(err, bookings.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid status transition: %v", route, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, bookings.ErrBookingNumberTaken):
		h.logger.Warn("%s - Booking number taken", route)
		handlers.RespondConflict(w, msgBookingNumberTaken)

	case errors.Is(err, bookings.ErrReferenceNotFound):
		h.logger.Warn("%s - Reference not found", route)
		handlers.RespondNotFound(w, msgReferenceNotFound)

	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Internal error (request_id=%s): %v", route, middleware.GetRequestID(r.Context()), err)
		handlers.RespondInternalError(w)
	}
}
