package events

import "time"

// Типы событий бронирования
const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
	TypeBookingCancelled     = "booking.cancelled"
)

// BookingEvent событие бронирования в топике Kafka
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     int64     `json:"bookingId"`
	BookingNumber int64     `json:"bookingNumber"`
	UserID        int64     `json:"userId"`
	Status        string    `json:"status"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	OccurredAt    time.Time `json:"occurredAt"`
}
