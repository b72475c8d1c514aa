package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// AdminRequest бронирование, создаваемое администратором
type AdminRequest struct {
	BookingNumber *int64   // Если не указан, номер выдается автоматически
	UserID        int64    // ID клиента
	ServiceID     int64    // ID услуги
	ScheduledAt   time.Time
	Status        string   // Пустая строка означает pending
	Notes         *string  // Дополнительные заметки (опционально)
	TotalAmount   *float64 // Если не указана, берется цена услуги
}

// BookNowRequest бронирование, создаваемое клиентом
type BookNowRequest struct {
	UserID      int64 // ID клиента из заголовка
	ServiceID   int64
	ScheduledAt time.Time
	Notes       *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	BookingNumber int64
	UserID        int64
	ServiceID     int64
	ScheduledAt   time.Time
	Status        string
	Notes         *string
	TotalAmount   float64

	// Данные клиента и услуги
	UserName     string
	UserEmail    string
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newResponse(b *domain.BookingDetails) *Response {
	return &Response{
		ID:            b.ID,
		BookingNumber: b.BookingNumber,
		UserID:        b.UserID,
		ServiceID:     b.ServiceID,
		ScheduledAt:   b.ScheduledAt,
		Status:        string(b.Status),
		Notes:         b.Notes,
		TotalAmount:   b.TotalAmount,
		UserName:      b.UserName,
		UserEmail:     b.UserEmail,
		ServiceName:   b.ServiceName,
		ServicePrice:  b.ServicePrice,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
