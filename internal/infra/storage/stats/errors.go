package stats

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("stats.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("stats.repository: failed to execute query")

	// ErrNoData возвращается, когда агрегат пуст (например, нет завершенных бронирований)
	ErrNoData = errors.New("stats.repository: no data")
)
