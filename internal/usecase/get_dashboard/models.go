package get_dashboard

import (
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// ServiceCount услуга и количество завершенных бронирований
type ServiceCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Chart данные столбчатой диаграммы
type Chart struct {
	Range       int      `json:"range"`
	Granularity string   `json:"granularity"`
	Labels      []string `json:"labels"`
	Data        []int64  `json:"data"`
}

// PieChart распределение бронирований по статусам
type PieChart struct {
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
	Cancelled int64 `json:"cancelled"`
}

// Summary сводка дашборда
type Summary struct {
	TotalBookings  int64          `json:"totalBookings"`
	TotalServices  int64          `json:"totalServices"`
	TotalCustomers int64          `json:"totalCustomers"`
	TopServices    []ServiceCount `json:"topServices"`
	BarChart       Chart          `json:"barChart"`
	PieChart       PieChart       `json:"pieChart"`
}

// ReportRow строка отчета
type ReportRow struct {
	BookingNumber int64     `json:"bookingNumber"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	ServiceName   string    `json:"serviceName"`
	Status        string    `json:"status"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	Scheduled     string    `json:"scheduled"`
	TotalAmount   float64   `json:"totalAmount"`
}

// Report отчет по бронированиям за последние шесть месяцев
type Report struct {
	GeneratedAt        time.Time     `json:"generatedAt"`
	Since              time.Time     `json:"since"`
	Bookings           []ReportRow   `json:"bookings"`
	MostPopularService *ServiceCount `json:"mostPopularService"`
}

func chartFromSeries(s *domain.PeriodSeries) Chart {
	return Chart{
		Range:       s.Range,
		Granularity: string(s.Granularity),
		Labels:      s.Labels,
		Data:        s.Data,
	}
}

func reportRow(b *domain.BookingDetails) ReportRow {
	return ReportRow{
		BookingNumber: b.BookingNumber,
		CustomerName:  b.UserName,
		CustomerEmail: b.UserEmail,
		ServiceName:   b.ServiceName,
		Status:        string(b.Status),
		ScheduledAt:   b.ScheduledAt,
		Scheduled:     b.ScheduledAt.Format(domain.ReportTimeFormat),
		TotalAmount:   b.TotalAmount,
	}
}
