package domain

import (
	"fmt"
	"strings"
	"time"
)

// PaymentStatus represents the review status of a payment
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// IsValid returns true if the status is one of the known statuses
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentApproved, PaymentRejected:
		return true
	}
	return false
}

// ParsePaymentStatus приводит строку к статусу оплаты
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	status := PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown payment status %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

// Payment represents a payment submitted for a booking
type Payment struct {
	ID              int64
	UserID          int64
	BookingID       int64
	Amount          float64
	ReferenceNumber string
	PaymentProof    *string
	Status          PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentDetails оплата вместе с номером бронирования и данными клиента
type PaymentDetails struct {
	Payment
	BookingNumber int64
	UserName      string
	UserEmail     string
}

// PaymentFilter фильтр выборки оплат
type PaymentFilter struct {
	Search string // Номер референса, номер бронирования, имя/email клиента
}
