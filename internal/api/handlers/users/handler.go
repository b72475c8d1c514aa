package users

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShopAdmin/internal/api/handlers"
	"github.com/m04kA/SMC-ShopAdmin/internal/api/middleware"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/users"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "пользователь не найден"
	msgEmailTaken         = "email уже используется"
	msgUserInUse          = "у пользователя есть бронирования или оплаты"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCreated            = "пользователь создан"
	msgUpdated            = "пользователь обновлен"
	msgDeleted            = "пользователь удален"
	msgProfileUpdated     = "профиль обновлен"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/users?search=&page=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), handlers.SearchFromQuery(r), handlers.PageFromQuery(r))
	if err != nil {
		h.logger.Error("GET /admin/users - Failed to list users: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondPage(w, result.Users, result.Pagination)
}

// Get GET /api/v1/admin/users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, "GET /admin/users/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

// Create POST /api/v1/admin/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if errs := handlers.Validate(req); errs != nil {
		handlers.RespondValidationError(w, handlers.MsgValidationFailed, errs)
		return
	}

	user, err := h.service.Create(r.Context(), req.toServiceRequest())
	if err != nil {
		h.respondServiceError(w, r, "POST /admin/users", err)
		return
	}

	h.logger.Info("POST /admin/users - User created: user_id=%d", user.ID)
	handlers.RespondMessage(w, http.StatusCreated, msgCreated, user)
}

// Update PUT /api/v1/admin/users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req UpdateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if errs := handlers.Validate(req); errs != nil {
		handlers.RespondValidationError(w, handlers.MsgValidationFailed, errs)
		return
	}

	user, err := h.service.Update(r.Context(), id, req.toServiceRequest())
	if err != nil {
		h.respondServiceError(w, r, "PUT /admin/users/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/users/{id} - User updated: user_id=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgUpdated, user)
}

// Delete DELETE /api/v1/admin/users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, "DELETE /admin/users/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/users/{id} - User deleted: user_id=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted, nil)
}

// Options GET /api/v1/admin/users/select
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Options(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/users/select - Failed to load options: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, options)
}

// GetProfile GET /api/v1/me/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, "GET /me/profile", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

// UpdateProfile PUT /api/v1/me/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /me/profile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if errs := handlers.Validate(req); errs != nil {
		handlers.RespondValidationError(w, handlers.MsgValidationFailed, errs)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, req.toServiceRequest())
	if err != nil {
		h.respondServiceError(w, r, "PUT /me/profile", err)
		return
	}

	h.logger.Info("PUT /me/profile - Profile updated: user_id=%d", userID)
	handlers.RespondMessage(w, http.StatusOK, msgProfileUpdated, user)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, route string, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, users.ErrEmailTaken):
		h.logger.Warn("%s - Email taken", route)
		handlers.RespondConflict(w, msgEmailTaken)

	case errors.Is(err, users.ErrUserInUse):
		h.logger.Warn("%s - User in use", route)
		handlers.RespondConflict(w, msgUserInUse)

	case errors.Is(err, users.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Internal error (request_id=%s): %v", route, middleware.GetRequestID(r.Context()), err)
		handlers.RespondInternalError(w)
	}
}
