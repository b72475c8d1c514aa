package payments

import (
	"context"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// PaymentRepository интерфейс репозитория оплат
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.PaymentDetails, error)
	List(ctx context.Context, filter domain.PaymentFilter, page domain.Page) ([]*domain.PaymentDetails, int64, error)
	Update(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
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
