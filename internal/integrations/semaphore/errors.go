package semaphore

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("semaphore client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("semaphore client: invalid response")

	// ErrRejected возвращается, когда шлюз отклонил сообщение (4xx)
	ErrRejected = errors.New("semaphore client: message rejected")

	// ErrEmptyRecipient возвращается при пустом номере получателя
	ErrEmptyRecipient = errors.New("semaphore client: empty recipient number")
)
