package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	"github.com/m04kA/SMC-ShopAdmin/internal/infra/events"
	"github.com/m04kA/SMC-ShopAdmin/pkg/metrics"
)

// Метки событий для метрик уведомлений
const (
	eventBookingReceived = "booking_received"
	eventStatusChanged   = "booking_status_changed"
	eventContact         = "contact"
)

// Config параметры уведомлений
type Config struct {
	FallbackNumber string
	Signature      string
}

// Service отправляет SMS и публикует события бронирований.
// Ошибки доставки логируются и не возвращаются вызывающему.
type Service struct {
	sms       SMSSender      // nil, если SMS выключены
	publisher EventPublisher // nil, если Kafka выключена
	admins    AdminPhoneRepository
	metrics   *metrics.Metrics
	cfg       Config
	logger    Logger
	now       func() time.Time
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(
	sms SMSSender,
	publisher EventPublisher,
	admins AdminPhoneRepository,
	m *metrics.Metrics,
	cfg Config,
	logger Logger,
) *Service {
	return &Service{
		sms:       sms,
		publisher: publisher,
		admins:    admins,
		metrics:   m,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// BookingReceived уведомляет клиента о новом бронировании
func (s *Service) BookingReceived(ctx context.Context, booking *domain.BookingDetails) {
	if booking == nil {
		return
	}

	s.sendToCustomer(ctx, eventBookingReceived, booking, bookingReceivedText(booking, s.cfg.Signature))
	s.publish(ctx, events.TypeBookingCreated, booking)
}

// BookingStatusChanged уведомляет клиента об изменении статуса бронирования
func (s *Service) BookingStatusChanged(ctx context.Context, booking *domain.BookingDetails) {
	if booking == nil {
		return
	}

	s.sendToCustomer(ctx, eventStatusChanged, booking, bookingStatusText(booking, s.cfg.Signature))

	eventType := events.TypeBookingStatusChanged
	if booking.Status == domain.StatusCancelled {
		eventType = events.TypeBookingCancelled
	}
	s.publish(ctx, eventType, booking)
}

// ContactAdmins рассылает сообщение формы обратной связи всем администраторам.
// Ошибку возвращает только отсутствие получателей, сбои отдельных отправок логируются.
func (s *Service) ContactAdmins(ctx context.Context, name, email, message string) error {
	s.logger.Info("ContactAdmins: contact message from %s", email)

	phones, err := s.admins.GetAdminPhones(ctx)
	if err != nil {
		s.logger.Error("ContactAdmins: failed to load admin phones: %v", err)
		return fmt.Errorf("%w: ContactAdmins - get admin phones: %v", ErrInternal, err)
	}

	recipients := make([]string, 0, len(phones))
	for _, phone := range phones {
		if formatted := domain.FormatPhone(phone); formatted != "" {
			recipients = append(recipients, formatted)
		}
	}

	if len(recipients) == 0 {
		s.logger.Warn("ContactAdmins: no admin phone numbers configured")
		return ErrNoAdminRecipients
	}

	text := contactText(name, email, message)
	for _, number := range recipients {
		s.send(ctx, eventContact, number, text)
	}

	return nil
}

func (s *Service) sendToCustomer(ctx context.Context, event string, booking *domain.BookingDetails, text string) {
	number := ""
	if booking.UserPhone != nil {
		number = domain.FormatPhone(*booking.UserPhone)
	}
	if number == "" {
		number = s.cfg.FallbackNumber
	}
	if number == "" {
		s.logger.Warn("%s: no phone number for booking #%d, sms skipped", event, booking.BookingNumber)
		s.count(event, metrics.ResultSkipped)
		return
	}

	s.send(ctx, event, number, text)
}

func (s *Service) send(ctx context.Context, event, number, text string) {
	if s.sms == nil {
		s.count(event, metrics.ResultSkipped)
		return
	}

	resp, err := s.sms.SendSMS(ctx, number, text)
	if err != nil {
		s.logger.Error("%s: failed to send sms to %s: %v", event, number, err)
		s.count(event, metrics.ResultFailure)
		return
	}

	s.logger.Info("%s: sms sent to %s, messages=%d", event, number, len(resp.Messages))
	s.count(event, metrics.ResultSuccess)
}

func (s *Service) publish(ctx context.Context, eventType string, booking *domain.BookingDetails) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishBookingEvent(ctx, events.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		BookingNumber: booking.BookingNumber,
		UserID:        booking.UserID,
		Status:        string(booking.Status),
		ScheduledAt:   booking.ScheduledAt,
		OccurredAt:    s.now(),
	})

	result := metrics.ResultSuccess
	if err != nil {
		s.logger.Error("publish: failed to publish %s for booking #%d: %v", eventType, booking.BookingNumber, err)
		result = metrics.ResultFailure
	}

	if s.metrics != nil {
		s.metrics.EventsPublished.WithLabelValues(eventType, result).Inc()
	}
}

func (s *Service) count(event, result string) {
	if s.metrics != nil {
		s.metrics.NotificationsTotal.WithLabelValues(event, result).Inc()
	}
}
