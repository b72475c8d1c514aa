package domain

// ServiceUsage количество завершенных бронирований по услуге
type ServiceUsage struct {
	ServiceID int64
	Name      string
	Count     int64
}

// Granularity гранулярность корзин графика
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// Допустимые диапазоны дашборда в месяцах
const (
	RangeCurrentMonth = 1
	RangeThreeMonths  = 3
	RangeSixMonths    = 6
)

// NormalizeRange приводит диапазон к 1, 3 или 6. Остальные значения считаются 1.
func NormalizeRange(r int) int {
	switch r {
	case RangeThreeMonths, RangeSixMonths:
		return r
	default:
		return RangeCurrentMonth
	}
}

// PeriodSeries результат агрегации по периодам
type PeriodSeries struct {
	Range       int
	Granularity Granularity
	Labels      []string
	Data        []int64
}
