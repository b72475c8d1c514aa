package notifications

import (
	"context"

	"github.com/m04kA/SMC-ShopAdmin/internal/infra/events"
	"github.com/m04kA/SMC-ShopAdmin/internal/integrations/semaphore"
)

// SMSSender отправка SMS через шлюз
type SMSSender interface {
	SendSMS(ctx context.Context, number, message string) (*semaphore.Response, error)
}

// EventPublisher публикация событий бронирования
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event events.BookingEvent) error
}

// AdminPhoneRepository источник телефонов администраторов
type AdminPhoneRepository interface {
	GetAdminPhones(ctx context.Context) ([]string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
