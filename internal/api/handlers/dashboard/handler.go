package dashboard

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ShopAdmin/internal/api/handlers"
)

type Handler struct {
	useCase DashboardUseCase
	logger  Logger
}

func NewHandler(useCase DashboardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Summary GET /api/v1/admin/dashboard?range=1|3|6&refresh=true
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Нечисловое значение приводится к диапазону по умолчанию внутри use case
	rangeMonths, err := strconv.Atoi(query.Get("range"))
	if err != nil && query.Get("range") != "" {
		h.logger.Warn("GET /admin/dashboard - Invalid range %q, using default", query.Get("range"))
	}
	refresh, _ := strconv.ParseBool(query.Get("refresh"))

	summary, err := h.useCase.Summary(r.Context(), rangeMonths, refresh)
	if err != nil {
		h.logger.Error("GET /admin/dashboard - Failed to build summary: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

// Report GET /api/v1/admin/dashboard/report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.useCase.Report(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/dashboard/report - Failed to build report: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}
