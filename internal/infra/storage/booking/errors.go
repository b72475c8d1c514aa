package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateNumber возвращается, когда номер бронирования уже занят
	ErrDuplicateNumber = errors.New("booking.repository: booking number already exists")

	// ErrReferenceNotFound возвращается, когда пользователь или услуга бронирования не существуют
	ErrReferenceNotFound = errors.New("booking.repository: referenced user or service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
