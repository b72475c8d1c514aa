package notifications

import (
	"fmt"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

func bookingReceivedText(b *domain.BookingDetails, signature string) string {
	return fmt.Sprintf(
		"Hi %s, your booking #%d for %s on %s at %s has been received. Status: %s. - %s",
		b.UserName,
		b.BookingNumber,
		b.ServiceName,
		b.ScheduledAt.Format(domain.SMSDateFormat),
		b.ScheduledAt.Format(domain.SMSTimeFormat),
		b.Status,
		signature,
	)
}

func bookingStatusText(b *domain.BookingDetails, signature string) string {
	return fmt.Sprintf(
		"Hi %s, your booking #%d has been updated. The new status is: %s. - %s",
		b.UserName,
		b.BookingNumber,
		b.Status,
		signature,
	)
}

func contactText(name, email, message string) string {
	return fmt.Sprintf("New contact message from %s (%s): %s", name, email, message)
}
