package get_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetAll(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	GetDetails(ctx context.Context, filter domain.BookingFilter) ([]*domain.BookingDetails, error)
}

// StatsRepository агрегирующие запросы
type StatsRepository interface {
	CountBookingsByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
	CountActiveServices(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountByStatuses(ctx context.Context, statuses []domain.BookingStatus) (map[domain.BookingStatus]int64, error)
	TopServices(ctx context.Context, limit int) ([]domain.ServiceUsage, error)
	MostPopularService(ctx context.Context) (*domain.ServiceUsage, error)
}

// Cache кэш сводки дашборда
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
