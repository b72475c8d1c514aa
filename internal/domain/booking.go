package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// bookingTransitions допустимые переходы статусов.
// completed и cancelled терминальные.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// AllBookingStatuses все статусы в порядке жизненного цикла
var AllBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// IsValid returns true if the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// IsTerminal returns true if no transition leaves this status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo проверяет допустимость перехода.
// Запись того же статуса всегда допустима.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseBookingStatus приводит строку к статусу бронирования
func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown booking status %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

// Booking represents a service booking
type Booking struct {
	ID            int64
	BookingNumber int64
	UserID        int64
	ServiceID     int64
	ScheduledAt   time.Time
	Status        BookingStatus
	Notes         *string
	TotalAmount   float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingDetails бронирование вместе с данными клиента и услуги
type BookingDetails struct {
	Booking
	UserName     string
	UserEmail    string
	UserPhone    *string
	ServiceName  string
	ServicePrice float64
}

// TransitionTo меняет статус, если переход допустим
func (b *Booking) TransitionTo(next BookingStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}
	b.Status = next
	return nil
}

// CanBeCancelledByUser клиент может отменить только свое бронирование в статусе pending
func (b *Booking) CanBeCancelledByUser(userID int64) bool {
	return b.UserID == userID && b.Status == StatusPending
}

// IsActive returns true if the booking is neither completed nor cancelled
func (b *Booking) IsActive() bool {
	return !b.Status.IsTerminal()
}

// BookingFilter фильтр выборки бронирований
type BookingFilter struct {
	UserID         *int64         // Бронирования клиента
	Status         *BookingStatus // Фильтр по статусу
	ScheduledFrom  *time.Time     // Включительно
	ScheduledUntil *time.Time     // Не включительно
	Search         string         // Номер, статус, название услуги, имя/email клиента
	NewestFirst    bool           // Сортировка по scheduled_at DESC
}
