package notifications

import "errors"

var (
	// ErrNoAdminRecipients возвращается, когда ни у одного администратора не указан телефон
	ErrNoAdminRecipients = errors.New("notifications.service: no admin phone numbers configured")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("notifications.service: internal error")
)
