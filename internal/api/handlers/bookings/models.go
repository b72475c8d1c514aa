package bookings

import (
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ShopAdmin/internal/usecase/create_booking"
)

// AdminBookingRequest HTTP запрос администратора на создание бронирования
type AdminBookingRequest struct {
	BookingNumber *int64    `json:"bookingNumber" validate:"omitempty,min=10000000,max=99999999"`
	UserID        int64     `json:"userId" validate:"required,gt=0"`
	ServiceID     int64     `json:"serviceId" validate:"required,gt=0"`
	ScheduledAt   time.Time `json:"scheduledAt" validate:"required"`
	Status        string    `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes         *string   `json:"notes" validate:"omitempty,max=500"`
	TotalAmount   *float64  `json:"totalAmount" validate:"omitempty,gte=0"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AdminBookingRequest) ToUseCaseRequest() *createBooking.AdminRequest {
	return &createBooking.AdminRequest{
		BookingNumber: r.BookingNumber,
		UserID:        r.UserID,
		ServiceID:     r.ServiceID,
		ScheduledAt:   r.ScheduledAt,
		Status:        r.Status,
		Notes:         r.Notes,
		TotalAmount:   r.TotalAmount,
	}
}

// UpdateBookingRequest HTTP запрос администратора на изменение бронирования
type UpdateBookingRequest struct {
	BookingNumber *int64    `json:"bookingNumber" validate:"omitempty,min=10000000,max=99999999"`
	UserID        int64     `json:"userId" validate:"required,gt=0"`
	ServiceID     int64     `json:"serviceId" validate:"required,gt=0"`
	ScheduledAt   time.Time `json:"scheduledAt" validate:"required"`
	Status        string    `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	Notes         *string   `json:"notes" validate:"omitempty,max=500"`
	TotalAmount   float64   `json:"totalAmount" validate:"gte=0"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest() *models.UpdateBookingRequest {
	return &models.UpdateBookingRequest{
		BookingNumber: r.BookingNumber,
		UserID:        r.UserID,
		ServiceID:     r.ServiceID,
		ScheduledAt:   r.ScheduledAt,
		Status:        r.Status,
		Notes:         r.Notes,
		TotalAmount:   r.TotalAmount,
	}
}

// BookNowRequest HTTP запрос клиента на бронирование
type BookNowRequest struct {
	ServiceID   int64     `json:"serviceId" validate:"required,gt=0"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	Notes       *string   `json:"notes" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookNowRequest) ToUseCaseRequest(userID int64) *createBooking.BookNowRequest {
	return &createBooking.BookNowRequest{
		UserID:      userID,
		ServiceID:   r.ServiceID,
		ScheduledAt: r.ScheduledAt,
		Notes:       r.Notes,
	}
}

// CreatedBookingResponse HTTP ответ с созданным бронированием
type CreatedBookingResponse struct {
	ID             int64     `json:"id"`
	BookingNumber  int64     `json:"bookingNumber"`
	UserID         int64     `json:"userId"`
	ServiceID      int64     `json:"serviceId"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
	TotalAmount    float64   `json:"totalAmount"`
	FormattedTotal string    `json:"formattedTotal"`
	UserName       string    `json:"userName"`
	ServiceName    string    `json:"serviceName"`
	CreatedAt      string    `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreatedBookingResponse {
	return &CreatedBookingResponse{
		ID:             resp.ID,
		BookingNumber:  resp.BookingNumber,
		UserID:         resp.UserID,
		ServiceID:      resp.ServiceID,
		ScheduledAt:    resp.ScheduledAt,
		Status:         resp.Status,
		Notes:          resp.Notes,
		TotalAmount:    resp.TotalAmount,
		FormattedTotal: domain.FormatPeso(resp.TotalAmount),
		UserName:       resp.UserName,
		ServiceName:    resp.ServiceName,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
