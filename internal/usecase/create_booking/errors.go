package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается при бронировании неактивной услуги
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrUserNotFound возвращается, когда клиент не существует
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrBookingNumberTaken возвращается, когда указанный номер бронирования уже занят
	ErrBookingNumberTaken = errors.New("create_booking: booking number already taken")

	// ErrInvalidDate возвращается при бронировании на прошедшее время
	ErrInvalidDate = errors.New("create_booking: scheduled time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
