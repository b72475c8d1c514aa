package get_dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// Aggregator считает завершенные бронирования по календарным корзинам
type Aggregator struct {
	bookingRepo BookingRepository
}

// NewAggregator создает агрегатор
func NewAggregator(bookingRepo BookingRepository) *Aggregator {
	return &Aggregator{bookingRepo: bookingRepo}
}

// period окно агрегации и функция метки
type period struct {
	granularity domain.Granularity
	start       time.Time // включительно
	end         time.Time // не включительно
	labels      []string
	label       func(t time.Time) string
}

// Aggregate возвращает ряд для диапазона 1, 3 или 6 месяцев относительно now.
// Диапазон вне этого набора считается равным 1. Пустые корзины получают 0.
func (a *Aggregator) Aggregate(ctx context.Context, rangeMonths int, now time.Time) (*domain.PeriodSeries, error) {
	rangeMonths = domain.NormalizeRange(rangeMonths)
	p := buildPeriod(rangeMonths, now)

	completed := domain.StatusCompleted
	bookings, err := a.bookingRepo.GetAll(ctx, domain.BookingFilter{
		Status:         &completed,
		ScheduledFrom:  &p.start,
		ScheduledUntil: &p.end,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: Aggregate - get bookings: %v", ErrInternal, err)
	}

	counts := make(map[string]int64, len(p.labels))
	for _, b := range bookings {
		counts[p.label(b.ScheduledAt.In(now.Location()))]++
	}

	data := make([]int64, len(p.labels))
	for i, l := range p.labels {
		data[i] = counts[l]
	}

	return &domain.PeriodSeries{
		Range:       rangeMonths,
		Granularity: p.granularity,
		Labels:      p.labels,
		Data:        data,
	}, nil
}

func buildPeriod(rangeMonths int, now time.Time) period {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := monthStart.AddDate(0, 1, 0)

	if rangeMonths == domain.RangeCurrentMonth {
		labels := make([]string, 0, 31)
		for d := monthStart; d.Before(end); d = d.AddDate(0, 0, 1) {
			labels = append(labels, dayLabel(d))
		}
		return period{
			granularity: domain.GranularityDay,
			start:       monthStart,
			end:         end,
			labels:      labels,
			label:       dayLabel,
		}
	}

	start := monthStart.AddDate(0, -(rangeMonths - 1), 0)
	labels := make([]string, 0, rangeMonths)
	for m := start; m.Before(end); m = m.AddDate(0, 1, 0) {
		labels = append(labels, monthLabel(m))
	}

	return period{
		granularity: domain.GranularityMonth,
		start:       start,
		end:         end,
		labels:      labels,
		label:       monthLabel,
	}
}

func dayLabel(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func monthLabel(t time.Time) string {
	return t.Format(domain.MonthLabelFormat)
}
