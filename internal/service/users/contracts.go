package users

import (
	"context"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]*domain.User, int64, error)
	GetAll(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// PasswordHasher хэширование паролей
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
