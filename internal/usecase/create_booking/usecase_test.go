package create_booking

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/service"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/bookingcode"
	"github.com/m04kA/SMC-ShopAdmin/pkg/logger"
	"github.com/m04kA/SMC-ShopAdmin/pkg/ptr"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	// Копия, чтобы зафиксировать номер на момент вызова
	snapshot := *booking
	args := m.Called(ctx, snapshot.BookingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	created := snapshot
	created.ID = args.Get(0).(int64)
	return &created, args.Error(1)
}

func (m *MockBookingRepository) GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetails), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingReceived(ctx context.Context, booking *domain.BookingDetails) {
	m.Called(ctx, booking)
}

type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// sequenceGenerator возвращает заданные смещения по очереди
type sequenceGenerator struct {
	values []int64
	next   int
}

func (g *sequenceGenerator) Int63n(int64) int64 {
	v := g.values[g.next%len(g.values)]
	g.next++
	return v
}

// freeNumbers считает свободными все номера
type freeNumbers struct{}

func (freeNumbers) ExistsByNumber(context.Context, int64) (bool, error) {
	return false, nil
}

type MockTimeProvider struct {
	now time.Time
}

func (m *MockTimeProvider) Now() time.Time {
	return m.now
}

var (
	now       = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	tomorrow  = now.Add(24 * time.Hour)
	yesterday = now.Add(-24 * time.Hour)
)

type fixture struct {
	bookings *MockBookingRepository
	services *MockServiceRepository
	notifier *MockNotifier
	uc       *UseCase
}

func newFixture(offsets ...int64) *fixture {
	if len(offsets) == 0 {
		offsets = []int64{0}
	}

	log := logger.NewWithWriter(io.Discard, logger.LevelDebug)
	f := &fixture{
		bookings: &MockBookingRepository{},
		services: &MockServiceRepository{},
		notifier: &MockNotifier{},
	}

	allocator := bookingcode.NewServiceWithGenerator(freeNumbers{}, &sequenceGenerator{values: offsets}, 5, log)
	f.uc = NewUseCase(f.bookings, f.services, allocator, f.notifier, inlineTxManager{}, log)
	f.uc.timeProvider = &MockTimeProvider{now: now}
	return f
}

func activeService() *domain.Service {
	return &domain.Service{ID: 2, Name: "Wash", Price: 350, DurationMinutes: 30, IsActive: true}
}

func createdDetails(id, number int64, status domain.BookingStatus) *domain.BookingDetails {
	return &domain.BookingDetails{
		Booking: domain.Booking{
			ID:            id,
			BookingNumber: number,
			UserID:        5,
			ServiceID:     2,
			ScheduledAt:   tomorrow,
			Status:        status,
			TotalAmount:   350,
		},
		ServiceName: "Wash",
	}
}

func TestUseCase_BookNow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(0)

	f.services.On("GetByID", ctx, int64(2)).Return(activeService(), nil)
	f.bookings.On("Create", ctx, domain.MinBookingNumber).Return(int64(11), nil)
	f.bookings.On("GetDetailsByID", ctx, int64(11)).Return(createdDetails(11, domain.MinBookingNumber, domain.StatusPending), nil)
	f.notifier.On("BookingReceived", ctx, mock.Anything).Return()

	resp, err := f.uc.BookNow(ctx, &BookNowRequest{UserID: 5, ServiceID: 2, ScheduledAt: tomorrow})
	require.NoError(t, err)
	assert.Equal(t, domain.MinBookingNumber, resp.BookingNumber)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 350.0, resp.TotalAmount)
	f.notifier.AssertExpectations(t)
}

func TestUseCase_BookNow_RetriesOnDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	f := newFixture(0, 1)

	first := domain.MinBookingNumber
	second := domain.MinBookingNumber + 1

	f.services.On("GetByID", ctx, int64(2)).Return(activeService(), nil)
	f.bookings.On("Create", ctx, first).Return(nil, bookingRepo.ErrDuplicateNumber).Once()
	f.bookings.On("Create", ctx, second).Return(int64(12), nil).Once()
	f.bookings.On("GetDetailsByID", ctx, int64(12)).Return(createdDetails(12, second, domain.StatusPending), nil)
	f.notifier.On("BookingReceived", ctx, mock.Anything).Return()

	resp, err := f.uc.BookNow(ctx, &BookNowRequest{UserID: 5, ServiceID: 2, ScheduledAt: tomorrow})
	require.NoError(t, err)
	assert.Equal(t, second, resp.BookingNumber)
	f.bookings.AssertNumberOfCalls(t, "Create", 2)
}

func TestUseCase_BookNow_Rejections(t *testing.T) {
	inactive := activeService()
	inactive.IsActive = false

	tests := []struct {
		name    string
		req     *BookNowRequest
		service *domain.Service
		repoErr error
		wantErr error
	}{
		{"past date", &BookNowRequest{UserID: 5, ServiceID: 2, ScheduledAt: yesterday}, activeService(), nil, ErrInvalidDate},
		{"missing date", &BookNowRequest{UserID: 5, ServiceID: 2}, activeService(), nil, ErrInvalidInput},
		{"inactive service", &BookNowRequest{UserID: 5, ServiceID: 2, ScheduledAt: tomorrow}, inactive, nil, ErrServiceInactive},
		{"unknown service", &BookNowRequest{UserID: 5, ServiceID: 2, ScheduledAt: tomorrow}, nil, serviceRepo.ErrServiceNotFound, ErrServiceNotFound},
		{"long notes", &BookNowRequest{UserID: 5, ServiceID: 2, ScheduledAt: tomorrow, Notes: ptr.Ptr(string(make([]rune, domain.MaxNotesLength+1)))}, activeService(), nil, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture()
			if tt.service != nil {
				f.services.On("GetByID", ctx, int64(2)).Return(tt.service, nil)
			} else {
				f.services.On("GetByID", ctx, int64(2)).Return(nil, tt.repoErr)
			}

			_, err := f.uc.BookNow(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.notifier.AssertNotCalled(t, "BookingReceived", mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_BookNow_AllocatorExhausted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(0)

	f.services.On("GetByID", ctx, int64(2)).Return(activeService(), nil)
	f.bookings.On("Create", ctx, domain.MinBookingNumber).Return(nil, bookingRepo.ErrDuplicateNumber)

	_, err := f.uc.BookNow(ctx, &BookNowRequest{UserID: 5, ServiceID: 2, ScheduledAt: tomorrow})
	assert.ErrorIs(t, err, ErrInternal)
	f.bookings.AssertNumberOfCalls(t, "Create", 5)
}

func TestUseCase_CreateByAdmin_ExplicitNumber(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.services.On("GetByID", ctx, int64(2)).Return(activeService(), nil)
	f.bookings.On("Create", ctx, int64(55555555)).Return(int64(20), nil)
	f.bookings.On("GetDetailsByID", ctx, int64(20)).Return(createdDetails(20, 55555555, domain.StatusConfirmed), nil)
	f.notifier.On("BookingReceived", ctx, mock.Anything).Return()

	resp, err := f.uc.CreateByAdmin(ctx, &AdminRequest{
		BookingNumber: ptr.Ptr(int64(55555555)),
		UserID:        5,
		ServiceID:     2,
		ScheduledAt:   yesterday,
		Status:        "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55555555), resp.BookingNumber)
}

func TestUseCase_CreateByAdmin_ExplicitNumberTaken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.services.On("GetByID", ctx, int64(2)).Return(activeService(), nil)
	f.bookings.On("Create", ctx, int64(55555555)).Return(nil, bookingRepo.ErrDuplicateNumber)

	_, err := f.uc.CreateByAdmin(ctx, &AdminRequest{
		BookingNumber: ptr.Ptr(int64(55555555)),
		UserID:        5,
		ServiceID:     2,
		ScheduledAt:   tomorrow,
	})
	assert.ErrorIs(t, err, ErrBookingNumberTaken)
	f.bookings.AssertNumberOfCalls(t, "Create", 1)
}

func TestUseCase_CreateByAdmin_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *AdminRequest
	}{
		{"short number", &AdminRequest{BookingNumber: ptr.Ptr(int64(1234567)), UserID: 5, ServiceID: 2, ScheduledAt: tomorrow}},
		{"nine digits", &AdminRequest{BookingNumber: ptr.Ptr(int64(100000000)), UserID: 5, ServiceID: 2, ScheduledAt: tomorrow}},
		{"unknown status", &AdminRequest{UserID: 5, ServiceID: 2, ScheduledAt: tomorrow, Status: "archived"}},
		{"negative total", &AdminRequest{UserID: 5, ServiceID: 2, ScheduledAt: tomorrow, TotalAmount: ptr.Ptr(-1.0)}},
		{"missing user", &AdminRequest{ServiceID: 2, ScheduledAt: tomorrow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.CreateByAdmin(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_CreateByAdmin_UnknownUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(7)

	f.services.On("GetByID", ctx, int64(2)).Return(activeService(), nil)
	f.bookings.On("Create", ctx, domain.MinBookingNumber+7).Return(nil, bookingRepo.ErrReferenceNotFound)

	_, err := f.uc.CreateByAdmin(ctx, &AdminRequest{UserID: 404, ServiceID: 2, ScheduledAt: tomorrow})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.False(t, errors.Is(err, ErrInternal))
}
