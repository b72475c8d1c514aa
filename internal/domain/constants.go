package domain

import "math"

// Booking number range (8 digits)
const (
	MinBookingNumber int64 = 10_000_000
	MaxBookingNumber int64 = 99_999_999
)

// Pagination
const (
	DefaultPageSize  = 10
	TopServicesLimit = 5
	MaxPageOffset    = math.MaxInt32 // Верхняя граница смещения, номер страницы обрезается под нее
)

// Business validation constants
const (
	MaxNotesLength    = 500
	MinPasswordLength = 8
)

// Time format constants
const (
	DateFormat       = "2006-01-02" // YYYY-MM-DD, метка дневной корзины
	MonthLabelFormat = "Jan 2006"   // Метка месячной корзины
	SMSDateFormat    = "Jan 02, 2006"
	SMSTimeFormat    = "3:04 PM"
	ReportTimeFormat = "2006-01-02 15:04"
)

// IsValidBookingNumber проверяет, что номер состоит ровно из 8 цифр
func IsValidBookingNumber(n int64) bool {
	return n >= MinBookingNumber && n <= MaxBookingNumber
}
