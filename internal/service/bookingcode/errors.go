package bookingcode

import "errors"

var (
	// ErrCodeTaken сигнализирует, что номер занят (нарушение уникальности при вставке)
	ErrCodeTaken = errors.New("bookingcode: code already taken")

	// ErrExhausted возвращается, когда за отведенное число попыток не удалось получить свободный номер
	ErrExhausted = errors.New("bookingcode: attempts exhausted")

	// ErrStore возвращается при ошибке хранилища во время проверки номера
	ErrStore = errors.New("bookingcode: store error")
)
