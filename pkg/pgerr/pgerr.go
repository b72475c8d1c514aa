package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL
const (
	CodeUniqueViolation     pq.ErrorCode = "23505"
	CodeForeignKeyViolation pq.ErrorCode = "23503"
)

// IsUniqueViolation проверяет, что ошибка вызвана нарушением уникального ограничения.
// Если переданы имена ограничений, совпасть должно одно из них.
func IsUniqueViolation(err error, constraints ...string) bool {
	return is(err, CodeUniqueViolation, constraints...)
}

// IsForeignKeyViolation проверяет нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return is(err, CodeForeignKeyViolation)
}

func is(err error, code pq.ErrorCode, constraints ...string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != code {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if pqErr.Constraint == c {
			return true
		}
	}
	return false
}
