package bookings

import (
	"context"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
	GetDetails(ctx context.Context, filter domain.BookingFilter) ([]*domain.BookingDetails, error)
	List(ctx context.Context, filter domain.BookingFilter, page domain.Page) ([]*domain.BookingDetails, int64, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
}

// Notifier уведомления об изменении бронирований
type Notifier interface {
	BookingStatusChanged(ctx context.Context, booking *domain.BookingDetails)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
