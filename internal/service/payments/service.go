package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/payments/models"
)

// Service сервис оплат
type Service struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса оплат
func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// List получает страницу оплат с поиском
func (s *Service) List(ctx context.Context, search string, page domain.Page) (*models.PaymentListResponse, error) {
	s.logger.Info("List: fetching payments, search=%q, page=%d", search, page.Number)

	payments, total, err := s.paymentRepo.List(ctx, domain.PaymentFilter{Search: strings.TrimSpace(search)}, page)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.PaymentListResponse{
		Payments:   models.FromDomainPaymentDetailsList(payments),
		Pagination: domain.NewPageInfo(page, total, len(payments)),
	}, nil
}

// GetByID получает оплату по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PaymentResponse, error) {
	payment, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPaymentDetails(payment), nil
}

// Submit создает оплату клиента за его собственное бронирование
func (s *Service) Submit(ctx context.Context, userID int64, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Submit: user=%d paying for booking id=%d", userID, req.BookingID)
	return s.create(ctx, "Submit", &userID, req)
}

// Create создает оплату от имени администратора для любого бронирования
func (s *Service) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Create: admin payment for booking id=%d", req.BookingID)
	return s.create(ctx, "Create", nil, req)
}

// Update изменяет номер референса, сумму и статус оплаты
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdatePaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Update: updating payment id=%d", id)

	status, err := domain.ParsePaymentStatus(req.Status)
	if err != nil {
		s.logger.Warn("Update: invalid status=%q for payment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validate(req.ReferenceNumber, req.Amount); err != nil {
		return nil, err
	}

	current, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	payment := current.Payment
	payment.ReferenceNumber = strings.TrimSpace(req.ReferenceNumber)
	payment.Amount = req.Amount
	payment.Status = status

	if err := s.paymentRepo.Update(ctx, &payment); err != nil {
		switch {
		case errors.Is(err, paymentRepo.ErrPaymentNotFound):
			return nil, ErrPaymentNotFound
		case errors.Is(err, paymentRepo.ErrDuplicateReference):
			s.logger.Warn("Update: reference %s already used", payment.ReferenceNumber)
			return nil, ErrDuplicateReference
		}
		s.logger.Error("Update: repository error for payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated payment id=%d", id)
	return s.GetByID(ctx, id)
}

// Delete удаляет оплату
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting payment id=%d", id)

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("Delete: payment id=%d not found", id)
			return ErrPaymentNotFound
		}
		s.logger.Error("Delete: repository error for payment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted payment id=%d", id)
	return nil
}

// create в одной транзакции сохраняет оплату и подтверждает ожидающее бронирование.
// ownerID задан для оплат клиента и ограничивает их его бронированиями.
func (s *Service) create(ctx context.Context, op string, ownerID *int64, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	if err := validate(req.ReferenceNumber, req.Amount); err != nil {
		s.logger.Warn("%s: validation failed: %v", op, err)
		return nil, err
	}

	var (
		paymentID int64
		confirmed bool
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("%s: booking id=%d not found", op, req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - get booking: %v", ErrInternal, op, err)
		}

		if ownerID != nil && booking.UserID != *ownerID {
			s.logger.Warn("%s: user=%d does not own booking id=%d", op, *ownerID, booking.ID)
			return ErrAccessDenied
		}
		if booking.Status == domain.StatusCancelled {
			s.logger.Warn("%s: booking id=%d is cancelled", op, booking.ID)
			return ErrBookingCancelled
		}

		created, err := s.paymentRepo.Create(ctx, &domain.Payment{
			UserID:          booking.UserID,
			BookingID:       booking.ID,
			Amount:          req.Amount,
			ReferenceNumber: strings.TrimSpace(req.ReferenceNumber),
			PaymentProof:    req.PaymentProof,
			Status:          domain.PaymentPending,
		})
		if err != nil {
			switch {
			case errors.Is(err, paymentRepo.ErrDuplicateReference):
				s.logger.Warn("%s: reference %s already used", op, req.ReferenceNumber)
				return ErrDuplicateReference
			case errors.Is(err, paymentRepo.ErrReferenceNotFound):
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - create payment: %v", ErrInternal, op, err)
		}
		paymentID = created.ID

		if booking.Status != domain.StatusPending {
			return nil
		}
		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusConfirmed); err != nil {
			return fmt.Errorf("%w: %s - confirm booking: %v", ErrInternal, op, err)
		}
		confirmed = true

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("%s: %v", op, err)
		}
		return nil, err
	}

	s.logger.Info("%s: created payment id=%d for booking id=%d", op, paymentID, req.BookingID)

	if confirmed {
		details, err := s.bookingRepo.GetDetailsByID(ctx, req.BookingID)
		if err != nil {
			s.logger.Error("%s: failed to load booking id=%d for notification: %v", op, req.BookingID, err)
		} else {
			s.notifier.BookingStatusChanged(ctx, details)
		}
	}

	return s.GetByID(ctx, paymentID)
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.PaymentDetails, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("%s: payment id=%d not found", op, id)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("%s: repository error for payment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return payment, nil
}

func validate(reference string, amount float64) error {
	if strings.TrimSpace(reference) == "" {
		return fmt.Errorf("%w: reference number is required", ErrInvalidInput)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	return nil
}
