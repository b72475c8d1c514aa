package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("bookings.service: access denied")

	// ErrCannotCancel возвращается, когда клиент пытается отменить не ожидающее бронирование
	ErrCannotCancel = errors.New("bookings.service: booking cannot be cancelled")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("bookings.service: invalid status transition")

	// ErrBookingNumberTaken возвращается, когда номер бронирования уже занят
	ErrBookingNumberTaken = errors.New("bookings.service: booking number already taken")

	// ErrReferenceNotFound возвращается, когда клиент или услуга не существуют
	ErrReferenceNotFound = errors.New("bookings.service: user or service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
