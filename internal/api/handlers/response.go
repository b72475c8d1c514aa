package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

const msgInternalError = "внутренняя ошибка сервера"

// Envelope общий формат ответа API
type Envelope struct {
	Result     bool                `json:"result"`
	Message    string              `json:"message,omitempty"`
	Data       interface{}         `json:"data,omitempty"`
	Pagination *Pagination         `json:"pagination,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

// Pagination метаданные страницы
type Pagination struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"perPage"`
	CurrentPage int   `json:"currentPage"`
	LastPage    int   `json:"lastPage"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
}

// NewPagination конвертирует метаданные страницы
func NewPagination(p domain.PageInfo) *Pagination {
	return &Pagination{
		Total:       p.Total,
		PerPage:     p.PerPage,
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		From:        p.From,
		To:          p.To,
	}
}

// RespondEnvelope пишет конверт с указанным статусом
func RespondEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// RespondJSON успешный ответ с данными
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	RespondEnvelope(w, status, Envelope{Result: true, Data: data})
}

// RespondMessage успешный ответ с сообщением
func RespondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondEnvelope(w, status, Envelope{Result: true, Message: message, Data: data})
}

// RespondPage успешный ответ со страницей данных
func RespondPage(w http.ResponseWriter, data interface{}, page domain.PageInfo) {
	RespondEnvelope(w, http.StatusOK, Envelope{Result: true, Data: data, Pagination: NewPagination(page)})
}

// RespondError ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondEnvelope(w, status, Envelope{Result: false, Message: message})
}

// RespondValidationError 422 с ошибками по полям
func RespondValidationError(w http.ResponseWriter, message string, errs map[string][]string) {
	RespondEnvelope(w, http.StatusUnprocessableEntity, Envelope{Result: false, Message: message, Errors: errs})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError 500 без деталей ошибки
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
