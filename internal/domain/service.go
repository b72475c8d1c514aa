package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Service represents a bookable shop service
type Service struct {
	ID              int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	IsActive        bool
	Image           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FormattedDuration возвращает длительность в виде "1h 30m", "2h" или "45m"
func (s *Service) FormattedDuration() string {
	hours := s.DurationMinutes / 60
	minutes := s.DurationMinutes % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormattedPrice возвращает цену в виде "₱1,234.50"
func (s *Service) FormattedPrice() string {
	return FormatPeso(s.Price)
}

// FormatPeso форматирует сумму в песо с разделителем тысяч
func FormatPeso(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	fixed := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + "₱" + b.String() + "." + frac
}

// ServiceFilter фильтр выборки услуг
type ServiceFilter struct {
	Search     string // Название или описание
	ActiveOnly bool
}

// ServiceOption элемент выпадающего списка услуг
type ServiceOption struct {
	ID    int64
	Name  string
	Price float64
}
