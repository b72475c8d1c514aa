package get_dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	dashboardCache "github.com/m04kA/SMC-ShopAdmin/internal/infra/cache/dashboard"
	statsRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/stats"
	"github.com/m04kA/SMC-ShopAdmin/pkg/metrics"
)

// reportMonths количество месяцев отчета, включая текущий
const reportMonths = 6

// UseCase use case сводки и отчета дашборда
type UseCase struct {
	aggregator   *Aggregator
	bookingRepo  BookingRepository
	statsRepo    StatsRepository
	cache        Cache // nil, если Redis выключен
	metrics      *metrics.Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	statsRepo StatsRepository,
	cache Cache,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		aggregator:   NewAggregator(bookingRepo),
		bookingRepo:  bookingRepo,
		statsRepo:    statsRepo,
		cache:        cache,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Summary возвращает сводку дашборда для диапазона 1, 3 или 6 месяцев.
// При refresh закэшированные сводки сбрасываются и пересчитываются.
func (uc *UseCase) Summary(ctx context.Context, rangeMonths int, refresh bool) (*Summary, error) {
	rangeMonths = domain.NormalizeRange(rangeMonths)
	now := uc.timeProvider.Now()
	key := dashboardCache.Key(rangeMonths, now)

	uc.logger.Info("Summary: range=%d, refresh=%t", rangeMonths, refresh)

	if refresh {
		uc.invalidate(ctx)
	} else if cached := uc.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	summary, err := uc.buildSummary(ctx, rangeMonths, now)
	if err != nil {
		uc.logger.Error("Summary: %v", err)
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, summary); err != nil {
			uc.logger.Warn("Summary: failed to cache summary: %v", err)
		}
	}

	return summary, nil
}

// Report возвращает бронирования начиная с первого числа месяца пять месяцев назад,
// новые первыми, и самую популярную услугу
func (uc *UseCase) Report(ctx context.Context) (*Report, error) {
	now := uc.timeProvider.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(reportMonths - 1), 0)

	uc.logger.Info("Report: bookings since %s", since.Format(domain.DateFormat))

	bookings, err := uc.bookingRepo.GetDetails(ctx, domain.BookingFilter{
		ScheduledFrom: &since,
		NewestFirst:   true,
	})
	if err != nil {
		uc.logger.Error("Report: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: Report - get bookings: %v", ErrInternal, err)
	}

	rows := make([]ReportRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, reportRow(b))
	}

	report := &Report{
		GeneratedAt: now,
		Since:       since,
		Bookings:    rows,
	}

	popular, err := uc.statsRepo.MostPopularService(ctx)
	switch {
	case err == nil:
		report.MostPopularService = &ServiceCount{Name: popular.Name, Count: popular.Count}
	case errors.Is(err, statsRepo.ErrNoData):
	default:
		uc.logger.Error("Report: failed to get most popular service: %v", err)
		return nil, fmt.Errorf("%w: Report - most popular service: %v", ErrInternal, err)
	}

	uc.logger.Info("Report: %d bookings", len(rows))
	return report, nil
}

func (uc *UseCase) buildSummary(ctx context.Context, rangeMonths int, now time.Time) (*Summary, error) {
	totalBookings, err := uc.statsRepo.CountBookingsByStatus(ctx, domain.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - count bookings: %v", ErrInternal, err)
	}

	totalServices, err := uc.statsRepo.CountActiveServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - count services: %v", ErrInternal, err)
	}

	totalCustomers, err := uc.statsRepo.CountCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - count customers: %v", ErrInternal, err)
	}

	usage, err := uc.statsRepo.TopServices(ctx, domain.TopServicesLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - top services: %v", ErrInternal, err)
	}

	series, err := uc.aggregator.Aggregate(ctx, rangeMonths, now)
	if err != nil {
		return nil, err
	}

	byStatus, err := uc.statsRepo.CountByStatuses(ctx, []domain.BookingStatus{
		domain.StatusCompleted,
		domain.StatusPending,
		domain.StatusCancelled,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - count by status: %v", ErrInternal, err)
	}

	top := make([]ServiceCount, 0, len(usage))
	for _, u := range usage {
		top = append(top, ServiceCount{Name: u.Name, Count: u.Count})
	}

	return &Summary{
		TotalBookings:  totalBookings,
		TotalServices:  totalServices,
		TotalCustomers: totalCustomers,
		TopServices:    top,
		BarChart:       chartFromSeries(series),
		PieChart: PieChart{
			Completed: byStatus[domain.StatusCompleted],
			Pending:   byStatus[domain.StatusPending],
			Cancelled: byStatus[domain.StatusCancelled],
		},
	}, nil
}

// fromCache читает сводку из кэша. Ошибки кэша логируются, запрос уходит в базу.
func (uc *UseCase) fromCache(ctx context.Context, key string) *Summary {
	if uc.cache == nil {
		return nil
	}

	var summary Summary
	found, err := uc.cache.Get(ctx, key, &summary)
	if err != nil {
		uc.logger.Warn("Summary: cache read failed, falling back to database: %v", err)
		uc.countCache(metrics.ResultFailure)
		return nil
	}
	if !found {
		uc.countCache(metrics.ResultMiss)
		return nil
	}

	uc.countCache(metrics.ResultHit)
	return &summary
}

func (uc *UseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Summary: failed to invalidate cache: %v", err)
	}
}

func (uc *UseCase) countCache(result string) {
	if uc.metrics != nil {
		uc.metrics.CacheRequests.WithLabelValues(result).Inc()
	}
}
