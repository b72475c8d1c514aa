package models

import (
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// ServiceRequest данные для создания и обновления услуги
type ServiceRequest struct {
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	IsActive        *bool // nil при создании означает true
	Image           *string
}

// ServiceResponse данные услуги
type ServiceResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description,omitempty"`
	Price             float64   `json:"price"`
	FormattedPrice    string    `json:"formattedPrice"`
	DurationMinutes   int       `json:"durationMinutes"`
	FormattedDuration string    `json:"formattedDuration"`
	IsActive          bool      `json:"isActive"`
	Image             *string   `json:"image,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ServiceListResponse страница услуг
type ServiceListResponse struct {
	Services   []ServiceResponse
	Pagination domain.PageInfo
}

// ServiceOption элемент выпадающего списка услуг
type ServiceOption struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Price:             s.Price,
		FormattedPrice:    s.FormattedPrice(),
		DurationMinutes:   s.DurationMinutes,
		FormattedDuration: s.FormattedDuration(),
		IsActive:          s.IsActive,
		Image:             s.Image,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) []ServiceResponse {
	resp := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		if dto := FromDomainService(s); dto != nil {
			resp = append(resp, *dto)
		}
	}
	return resp
}
