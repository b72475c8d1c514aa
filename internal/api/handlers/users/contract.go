package users

import (
	"context"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/users/models"
)

type UserService interface {
	List(ctx context.Context, search string, page domain.Page) (*models.UserListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.UserResponse, error)
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.UserResponse, error)
	Delete(ctx context.Context, id int64) error
	Options(ctx context.Context) ([]models.UserOption, error)
	GetProfile(ctx context.Context, userID int64) (*models.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
