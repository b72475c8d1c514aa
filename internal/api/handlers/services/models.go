package services

import "github.com/m04kA/SMC-ShopAdmin/internal/service/catalog/models"

// ServiceRequest HTTP запрос на создание или изменение услуги
type ServiceRequest struct {
	Name            string  `json:"name" validate:"required,max=255"`
	Description     *string `json:"description"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes int     `json:"duration" validate:"required,gt=0"`
	IsActive        *bool   `json:"isActive"`
	Image           *string `json:"image" validate:"omitempty,max=255"`
}

func (r *ServiceRequest) toServiceRequest() *models.ServiceRequest {
	return &models.ServiceRequest{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		IsActive:        r.IsActive,
		Image:           r.Image,
	}
}
