package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("users.service: user not found")

	// ErrEmailTaken возвращается, когда email уже используется другим пользователем
	ErrEmailTaken = errors.New("users.service: email already taken")

	// ErrUserInUse возвращается при удалении пользователя с бронированиями
	ErrUserInUse = errors.New("users.service: user has bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("users.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("users.service: internal error")
)
