package bookings

import (
	"context"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ShopAdmin/internal/usecase/create_booking"
)

type BookingService interface {
	List(ctx context.Context, search string, page domain.Page) (*models.BookingListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.BookingResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error)
	Delete(ctx context.Context, id int64) error
	MyBookings(ctx context.Context, userID int64) ([]models.BookingResponse, error)
	CancelByUser(ctx context.Context, id, userID int64) (*models.BookingResponse, error)
}

type CreateBookingUseCase interface {
	BookNow(ctx context.Context, req *createBooking.BookNowRequest) (*createBooking.Response, error)
	CreateByAdmin(ctx context.Context, req *createBooking.AdminRequest) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
