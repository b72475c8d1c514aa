package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// List получает страницу бронирований с поиском
func (s *Service) List(ctx context.Context, search string, page domain.Page) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, search=%q, page=%d", search, page.Number)

	bookings, total, err := s.bookingRepo.List(ctx, domain.BookingFilter{Search: strings.TrimSpace(search)}, page)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.BookingListResponse{
		Bookings:   models.FromDomainBookingDetailsList(bookings),
		Pagination: domain.NewPageInfo(page, total, len(bookings)),
	}, nil
}

// GetByID получает бронирование с данными клиента и услуги
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	details, err := s.bookingRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingDetails(details), nil
}

// Update изменяет бронирование. Смена статуса проверяется по таблице переходов,
// SMS отправляется только если статус действительно изменился.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d, status=%s", id, req.Status)

	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("Update: invalid status=%q for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.BookingNumber != nil && !domain.IsValidBookingNumber(*req.BookingNumber) {
		s.logger.Warn("Update: invalid booking number=%d for booking id=%d", *req.BookingNumber, id)
		return nil, fmt.Errorf("%w: booking number must have 8 digits", ErrInvalidInput)
	}
	if req.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: total amount must not be negative", ErrInvalidInput)
	}

	var statusChanged bool
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, "Update", id)
		if err != nil {
			return err
		}

		previous := booking.Status
		if err := booking.TransitionTo(status); err != nil {
			s.logger.Warn("Update: booking id=%d: %v", id, err)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, previous, status)
		}
		statusChanged = previous != status

		if req.BookingNumber != nil {
			booking.BookingNumber = *req.BookingNumber
		}
		booking.UserID = req.UserID
		booking.ServiceID = req.ServiceID
		booking.ScheduledAt = req.ScheduledAt
		booking.Notes = req.Notes
		booking.TotalAmount = req.TotalAmount

		return s.mapWriteError("Update", id, s.bookingRepo.Update(ctx, booking))
	})
	if err != nil {
		return nil, err
	}

	details, err := s.bookingRepo.GetDetailsByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - reload booking: %v", ErrInternal, err)
	}

	if statusChanged {
		s.notifier.BookingStatusChanged(ctx, details)
	}

	s.logger.Info("Update: successfully updated booking id=%d", id)
	return models.FromDomainBookingDetails(details), nil
}

// Delete удаляет бронирование вместе с его оплатами
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// MyBookings получает бронирования клиента, сначала самые поздние по дате
func (s *Service) MyBookings(ctx context.Context, userID int64) ([]models.BookingResponse, error) {
	s.logger.Info("MyBookings: fetching bookings for user=%d", userID)

	bookings, err := s.bookingRepo.GetDetails(ctx, domain.BookingFilter{
		UserID:      &userID,
		NewestFirst: true,
	})
	if err != nil {
		s.logger.Error("MyBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: MyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MyBookings: successfully fetched %d bookings for user=%d", len(bookings), userID)
	return models.FromDomainBookingDetailsList(bookings), nil
}

// CancelByUser отменяет бронирование клиентом.
// Клиент может отменить только свое бронирование в статусе pending.
func (s *Service) CancelByUser(ctx context.Context, id, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("CancelByUser: cancelling booking id=%d by user=%d", id, userID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, "CancelByUser", id)
		if err != nil {
			return err
		}

		if booking.UserID != userID {
			s.logger.Warn("CancelByUser: access denied for user=%d to booking id=%d", userID, id)
			return ErrAccessDenied
		}
		if !booking.CanBeCancelledByUser(userID) {
			s.logger.Warn("CancelByUser: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
			return ErrCannotCancel
		}

		return s.mapWriteError("CancelByUser", id, s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled))
	})
	if err != nil {
		return nil, err
	}

	details, err := s.bookingRepo.GetDetailsByID(ctx, id)
	if err != nil {
		s.logger.Error("CancelByUser: failed to reload booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: CancelByUser - reload booking: %v", ErrInternal, err)
	}

	s.notifier.BookingStatusChanged(ctx, details)

	s.logger.Info("CancelByUser: successfully cancelled booking id=%d", id)
	return models.FromDomainBookingDetails(details), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) mapWriteError(op string, id int64, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d not found during write", op, id)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrDuplicateNumber):
		s.logger.Warn("%s: booking number already taken for booking id=%d", op, id)
		return ErrBookingNumberTaken
	case errors.Is(err, bookingRepo.ErrReferenceNotFound):
		s.logger.Warn("%s: user or service not found for booking id=%d", op, id)
		return ErrReferenceNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
