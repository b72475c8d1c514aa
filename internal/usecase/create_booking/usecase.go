package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/service"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/bookingcode"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	allocator    CodeAllocator
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	allocator CodeAllocator,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		allocator:    allocator,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// BookNow создает бронирование клиента в статусе pending.
// Услуга должна быть активной, сумма равна цене услуги, номер выдается аллокатором.
func (uc *UseCase) BookNow(ctx context.Context, req *BookNowRequest) (*Response, error) {
	uc.logger.Info("BookNow: user=%d, service=%d, scheduledAt=%s",
		req.UserID, req.ServiceID, req.ScheduledAt.Format(domain.ReportTimeFormat))

	if err := validateCommon(req.UserID, req.ServiceID, req.ScheduledAt.IsZero(), req.Notes); err != nil {
		uc.logger.Warn("BookNow: validation failed: %v", err)
		return nil, err
	}

	if req.ScheduledAt.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("BookNow: scheduledAt=%s is in the past", req.ScheduledAt.Format(domain.ReportTimeFormat))
		return nil, ErrInvalidDate
	}

	service, err := uc.getService(ctx, "BookNow", req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		uc.logger.Warn("BookNow: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	booking := &domain.Booking{
		UserID:      req.UserID,
		ServiceID:   service.ID,
		ScheduledAt: req.ScheduledAt,
		Status:      domain.StatusPending,
		Notes:       req.Notes,
		TotalAmount: service.Price,
	}

	return uc.create(ctx, "BookNow", booking, nil)
}

// CreateByAdmin создает бронирование от имени администратора.
// Номер можно указать явно, тогда он должен состоять из 8 цифр и быть свободным.
func (uc *UseCase) CreateByAdmin(ctx context.Context, req *AdminRequest) (*Response, error) {
	uc.logger.Info("CreateByAdmin: user=%d, service=%d, status=%q", req.UserID, req.ServiceID, req.Status)

	if err := validateCommon(req.UserID, req.ServiceID, req.ScheduledAt.IsZero(), req.Notes); err != nil {
		uc.logger.Warn("CreateByAdmin: validation failed: %v", err)
		return nil, err
	}

	status := domain.StatusPending
	if req.Status != "" {
		parsed, err := domain.ParseBookingStatus(req.Status)
		if err != nil {
			uc.logger.Warn("CreateByAdmin: invalid status=%q", req.Status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = parsed
	}

	if req.BookingNumber != nil && !domain.IsValidBookingNumber(*req.BookingNumber) {
		uc.logger.Warn("CreateByAdmin: invalid booking number=%d", *req.BookingNumber)
		return nil, fmt.Errorf("%w: booking number must have 8 digits", ErrInvalidInput)
	}

	if req.TotalAmount != nil && *req.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: total amount must not be negative", ErrInvalidInput)
	}

	service, err := uc.getService(ctx, "CreateByAdmin", req.ServiceID)
	if err != nil {
		return nil, err
	}

	total := service.Price
	if req.TotalAmount != nil {
		total = *req.TotalAmount
	}

	booking := &domain.Booking{
		UserID:      req.UserID,
		ServiceID:   service.ID,
		ScheduledAt: req.ScheduledAt,
		Status:      status,
		Notes:       req.Notes,
		TotalAmount: total,
	}

	return uc.create(ctx, "CreateByAdmin", booking, req.BookingNumber)
}

// create сохраняет бронирование в транзакции. Без явного номера вставка повторяется
// с новым номером, пока хранилище сообщает о конфликте уникальности.
func (uc *UseCase) create(ctx context.Context, op string, booking *domain.Booking, number *int64) (*Response, error) {
	var created *domain.Booking

	insert := func(ctx context.Context, code int64) error {
		booking.BookingNumber = code

		result, err := uc.bookingRepo.Create(ctx, booking)
		switch {
		case err == nil:
			created = result
			return nil
		case errors.Is(err, bookingRepo.ErrDuplicateNumber):
			return fmt.Errorf("%w: %v", bookingcode.ErrCodeTaken, err)
		case errors.Is(err, bookingRepo.ErrReferenceNotFound):
			uc.logger.Warn("%s: user id=%d not found", op, booking.UserID)
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if number != nil {
			err := insert(txCtx, *number)
			if errors.Is(err, bookingcode.ErrCodeTaken) {
				uc.logger.Warn("%s: booking number=%d already taken", op, *number)
				return ErrBookingNumberTaken
			}
			return err
		}

		_, err := uc.allocator.Assign(txCtx, insert)
		if errors.Is(err, bookingcode.ErrExhausted) || errors.Is(err, bookingcode.ErrStore) {
			return fmt.Errorf("%w: failed to allocate booking number: %v", ErrInternal, err)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("%s: %v", op, err)
		}
		return nil, err
	}

	details, err := uc.bookingRepo.GetDetailsByID(ctx, created.ID)
	if err != nil {
		uc.logger.Error("%s: failed to load created booking id=%d: %v", op, created.ID, err)
		return nil, fmt.Errorf("%w: failed to load created booking: %v", ErrInternal, err)
	}

	uc.logger.Info("%s: successfully created booking id=%d number=%d", op, details.ID, details.BookingNumber)

	uc.notifier.BookingReceived(ctx, details)

	return newResponse(details), nil
}

func (uc *UseCase) getService(ctx context.Context, op string, id int64) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("%s: service id=%d not found", op, id)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("%s: failed to get service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	return service, nil
}

// validateCommon валидирует поля, общие для обоих видов запроса
func validateCommon(userID, serviceID int64, noDate bool, notes *string) error {
	if userID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if serviceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if noDate {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}

	if notes != nil && len([]rune(*notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
