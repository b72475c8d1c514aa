package bookingcode

import "context"

// BookingRepository проверка занятости номера
type BookingRepository interface {
	ExistsByNumber(ctx context.Context, number int64) (bool, error)
}

// Generator источник случайных чисел
type Generator interface {
	// Int63n возвращает число в [0, n)
	Int63n(n int64) int64
}

// InsertFunc вставляет запись с выданным номером.
// Должна вернуть ошибку, для которой errors.Is(err, ErrCodeTaken), если номер уже занят.
type InsertFunc func(ctx context.Context, code int64) error

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
