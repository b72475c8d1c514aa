package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда оплата не найдена
	ErrPaymentNotFound = errors.New("payments.service: payment not found")

	// ErrBookingNotFound возвращается, когда оплачиваемое бронирование не найдено
	ErrBookingNotFound = errors.New("payments.service: booking not found")

	// ErrAccessDenied возвращается при оплате чужого бронирования
	ErrAccessDenied = errors.New("payments.service: access denied")

	// ErrBookingCancelled возвращается при оплате отмененного бронирования
	ErrBookingCancelled = errors.New("payments.service: booking is cancelled")

	// ErrDuplicateReference возвращается, когда номер референса уже использован
	ErrDuplicateReference = errors.New("payments.service: reference number already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("payments.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments.service: internal error")
)
