package models

import (
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// Request модели

// UpdateBookingRequest запрос администратора на изменение бронирования
type UpdateBookingRequest struct {
	BookingNumber *int64 // nil оставляет текущий номер
	UserID        int64
	ServiceID     int64
	ScheduledAt   time.Time
	Status        string
	Notes         *string
	TotalAmount   float64
}

// Response модели

// BookingUser клиент бронирования
type BookingUser struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// BookingService услуга бронирования
type BookingService struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64          `json:"id"`
	BookingNumber  int64          `json:"bookingNumber"`
	UserID         int64          `json:"userId"`
	ServiceID      int64          `json:"serviceId"`
	ScheduledAt    time.Time      `json:"scheduledAt"`
	Status         string         `json:"status"`
	Notes          *string        `json:"notes,omitempty"`
	TotalAmount    float64        `json:"totalAmount"`
	FormattedTotal string         `json:"formattedTotal"`
	User           BookingUser    `json:"user"`
	Service        BookingService `json:"service"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// BookingListResponse страница бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse
	Pagination domain.PageInfo
}

// FromDomainBookingDetails конвертирует domain модель в DTO
func FromDomainBookingDetails(b *domain.BookingDetails) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:             b.ID,
		BookingNumber:  b.BookingNumber,
		UserID:         b.UserID,
		ServiceID:      b.ServiceID,
		ScheduledAt:    b.ScheduledAt,
		Status:         string(b.Status),
		Notes:          b.Notes,
		TotalAmount:    b.TotalAmount,
		FormattedTotal: domain.FormatPeso(b.TotalAmount),
		User: BookingUser{
			Name:  b.UserName,
			Email: b.UserEmail,
			Phone: b.UserPhone,
		},
		Service: BookingService{
			Name:  b.ServiceName,
			Price: b.ServicePrice,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookingDetailsList конвертирует список domain моделей в DTO
func FromDomainBookingDetailsList(bookings []*domain.BookingDetails) []BookingResponse {
	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if dto := FromDomainBookingDetails(b); dto != nil {
			resp = append(resp, *dto)
		}
	}
	return resp
}
