package get_dashboard

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	dashboardCache "github.com/m04kA/SMC-ShopAdmin/internal/infra/cache/dashboard"
	statsRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/stats"
	"github.com/m04kA/SMC-ShopAdmin/pkg/logger"
	"github.com/m04kA/SMC-ShopAdmin/pkg/metrics"
)

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) CountBookingsByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) CountActiveServices(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) CountCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) CountByStatuses(ctx context.Context, statuses []domain.BookingStatus) (map[domain.BookingStatus]int64, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.BookingStatus]int64), args.Error(1)
}

func (m *MockStatsRepository) TopServices(ctx context.Context, limit int) ([]domain.ServiceUsage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceUsage), args.Error(1)
}

func (m *MockStatsRepository) MostPopularService(ctx context.Context) (*domain.ServiceUsage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceUsage), args.Error(1)
}

// memoryCache кэш в памяти с возможностью сымитировать сбой чтения
type memoryCache struct {
	items       map[string]Summary
	readErr     error
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string]Summary)}
}

func (c *memoryCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	if c.readErr != nil {
		return false, c.readErr
	}
	item, ok := c.items[key]
	if !ok {
		return false, nil
	}
	*dst.(*Summary) = item
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}) error {
	c.items[key] = *value.(*Summary)
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.invalidated++
	c.items = make(map[string]Summary)
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func expectSummaryQueries(stats *MockStatsRepository) {
	stats.On("CountBookingsByStatus", mock.Anything, domain.StatusCompleted).Return(int64(12), nil)
	stats.On("CountActiveServices", mock.Anything).Return(int64(4), nil)
	stats.On("CountCustomers", mock.Anything).Return(int64(30), nil)
	stats.On("TopServices", mock.Anything, domain.TopServicesLimit).Return([]domain.ServiceUsage{
		{ServiceID: 1, Name: "Wash", Count: 8},
		{ServiceID: 2, Name: "Oil Change", Count: 4},
	}, nil)
	stats.On("CountByStatuses", mock.Anything, []domain.BookingStatus{
		domain.StatusCompleted, domain.StatusPending, domain.StatusCancelled,
	}).Return(map[domain.BookingStatus]int64{
		domain.StatusCompleted: 12,
		domain.StatusPending:   3,
		domain.StatusCancelled: 0,
	}, nil)
}

func newTestUseCase(store *fakeBookingStore, stats *MockStatsRepository, cache Cache, m *metrics.Metrics) *UseCase {
	uc := NewUseCase(store, stats, cache, m, logger.NewWithWriter(io.Discard, logger.LevelDebug))
	uc.timeProvider = fixedTime{now: reference}
	return uc
}

func TestUseCase_Summary(t *testing.T) {
	stats := &MockStatsRepository{}
	expectSummaryQueries(stats)
	store := &fakeBookingStore{bookings: []*domain.Booking{completedAt(reference)}}

	uc := newTestUseCase(store, stats, nil, nil)

	summary, err := uc.Summary(context.Background(), 1, false)
	require.NoError(t, err)

	assert.Equal(t, int64(12), summary.TotalBookings)
	assert.Equal(t, int64(4), summary.TotalServices)
	assert.Equal(t, int64(30), summary.TotalCustomers)
	assert.Equal(t, []ServiceCount{{Name: "Wash", Count: 8}, {Name: "Oil Change", Count: 4}}, summary.TopServices)
	assert.Equal(t, PieChart{Completed: 12, Pending: 3, Cancelled: 0}, summary.PieChart)
	assert.Equal(t, "day", summary.BarChart.Granularity)
	assert.Len(t, summary.BarChart.Labels, 30)
	assert.Equal(t, int64(1), summary.BarChart.Data[14])
}

func TestUseCase_Summary_CacheHitSkipsDatabase(t *testing.T) {
	stats := &MockStatsRepository{}
	expectSummaryQueries(stats)
	store := &fakeBookingStore{}
	cache := newMemoryCache()
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	uc := newTestUseCase(store, stats, cache, m)

	first, err := uc.Summary(context.Background(), 3, false)
	require.NoError(t, err)
	assert.Contains(t, cache.items, dashboardCache.Key(3, reference))

	second, err := uc.Summary(context.Background(), 3, false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.calls)
	stats.AssertNumberOfCalls(t, "CountCustomers", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues(metrics.ResultMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues(metrics.ResultHit)))
}

func TestUseCase_Summary_CacheFailureFallsThrough(t *testing.T) {
	stats := &MockStatsRepository{}
	expectSummaryQueries(stats)
	cache := newMemoryCache()
	cache.readErr = errors.New("redis down")

	uc := newTestUseCase(&fakeBookingStore{}, stats, cache, nil)

	summary, err := uc.Summary(context.Background(), 6, false)
	require.NoError(t, err)
	assert.Len(t, summary.BarChart.Labels, 6)
}

func TestUseCase_Summary_Refresh(t *testing.T) {
	stats := &MockStatsRepository{}
	expectSummaryQueries(stats)
	store := &fakeBookingStore{}
	cache := newMemoryCache()

	uc := newTestUseCase(store, stats, cache, nil)

	_, err := uc.Summary(context.Background(), 1, false)
	require.NoError(t, err)
	_, err = uc.Summary(context.Background(), 1, true)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.invalidated)
	assert.Equal(t, 2, store.calls)
}

func TestUseCase_Summary_StatsError(t *testing.T) {
	stats := &MockStatsRepository{}
	stats.On("CountBookingsByStatus", mock.Anything, domain.StatusCompleted).Return(int64(0), errors.New("db down"))

	uc := newTestUseCase(&fakeBookingStore{}, stats, nil, nil)

	_, err := uc.Summary(context.Background(), 1, false)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Report(t *testing.T) {
	stats := &MockStatsRepository{}
	stats.On("MostPopularService", mock.Anything).Return(&domain.ServiceUsage{Name: "Wash", Count: 8}, nil)

	store := &fakeBookingStore{details: []*domain.BookingDetails{{
		Booking: domain.Booking{
			BookingNumber: 12345678,
			ScheduledAt:   time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC),
			Status:        domain.StatusCompleted,
			TotalAmount:   350,
		},
		UserName:    "Juan",
		UserEmail:   "juan@example.com",
		ServiceName: "Wash",
	}}}

	uc := newTestUseCase(store, stats, nil, nil)

	report, err := uc.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), report.Since)
	assert.Equal(t, report.Since, *store.lastFilter.ScheduledFrom)
	assert.True(t, store.lastFilter.NewestFirst)
	require.Len(t, report.Bookings, 1)
	assert.Equal(t, "2025-06-10 09:30", report.Bookings[0].Scheduled)
	assert.Equal(t, &ServiceCount{Name: "Wash", Count: 8}, report.MostPopularService)
}

func TestUseCase_Report_NoCompletedBookings(t *testing.T) {
	stats := &MockStatsRepository{}
	stats.On("MostPopularService", mock.Anything).Return(nil, statsRepo.ErrNoData)

	uc := newTestUseCase(&fakeBookingStore{}, stats, nil, nil)

	report, err := uc.Report(context.Background())
	require.NoError(t, err)
	assert.Nil(t, report.MostPopularService)
	assert.Empty(t, report.Bookings)
}
