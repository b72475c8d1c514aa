package services

import (
	"context"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, search string, page domain.Page) (*models.ServiceListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error)
	Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error)
	Update(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error)
	Delete(ctx context.Context, id int64) error
	Options(ctx context.Context) ([]models.ServiceOption, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
