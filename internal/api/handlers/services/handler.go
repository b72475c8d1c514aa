package services

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShopAdmin/internal/api/handlers"
	"github.com/m04kA/SMC-ShopAdmin/internal/api/middleware"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/catalog"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "услуга не найдена"
	msgServiceInUse       = "услуга используется в бронированиях"
	msgCreated            = "услуга создана"
	msgUpdated            = "услуга обновлена"
	msgDeleted            = "услуга удалена"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/services?search=&page=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), handlers.SearchFromQuery(r), handlers.PageFromQuery(r))
	if err != nil {
		h.logger.Error("GET /admin/services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondPage(w, result.Services, result.Pagination)
}

// Get GET /api/v1/admin/services/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	service, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, "GET /admin/services/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, service)
}

// Create POST /api/v1/admin/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, "POST /admin/services")
	if !ok {
		return
	}

	service, err := h.service.Create(r.Context(), req.toServiceRequest())
	if err != nil {
		h.respondServiceError(w, r, "POST /admin/services", err)
		return
	}

	h.logger.Info("POST /admin/services - Service created: service_id=%d", service.ID)
	handlers.RespondMessage(w, http.StatusCreated, msgCreated, service)
}

// Update PUT /api/v1/admin/services/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	req, ok := h.decode(w, r, "PUT /admin/services/{id}")
	if !ok {
		return
	}

	service, err := h.service.Update(r.Context(), id, req.toServiceRequest())
	if err != nil {
		h.respondServiceError(w, r, "PUT /admin/services/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Service updated: service_id=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgUpdated, service)
}

// Delete DELETE /api/v1/admin/services/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, "DELETE /admin/services/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Service deleted: service_id=%d", id)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted, nil)
}

// Options GET /api/v1/services/select
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Options(r.Context())
	if err != nil {
		h.logger.Error("GET /services/select - Failed to load options: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, options)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string) (*ServiceRequest, bool) {
	var req ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}
	if errs := handlers.Validate(req); errs != nil {
		handlers.RespondValidationError(w, handlers.MsgValidationFailed, errs)
		return nil, false
	}
	return &req, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, catalog.ErrServiceInUse):
		h.logger.Warn("%s - Service in use", route)
		handlers.RespondConflict(w, msgServiceInUse)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Internal error (request_id=%s): %v", route, middleware.GetRequestID(r.Context()), err)
		handlers.RespondInternalError(w)
	}
}
