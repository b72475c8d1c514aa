package domain

import "errors"

var (
	// ErrInvalidStatus неизвестный статус
	ErrInvalidStatus = errors.New("domain: invalid status")

	// ErrInvalidTransition переход статуса не разрешен
	ErrInvalidTransition = errors.New("domain: invalid status transition")
)
