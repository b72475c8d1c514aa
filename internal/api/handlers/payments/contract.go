package payments

import (
	"context"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/payments/models"
)

type PaymentService interface {
	List(ctx context.Context, search string, page domain.Page) (*models.PaymentListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.PaymentResponse, error)
	Submit(ctx context.Context, userID int64, req *models.CreatePaymentRequest) (*models.PaymentResponse, error)
	Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdatePaymentRequest) (*models.PaymentResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
