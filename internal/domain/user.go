package domain

import (
	"strings"
	"time"
)

// User represents a customer or an administrator
type User struct {
	ID              int64
	Name            string
	Email           string
	PasswordHash    string
	Phone           *string
	Address         *string
	City            *string
	Zip             *string
	Country         *string
	ProfilePhotoURL *string
	IsAdmin         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FormattedPhone приводит филиппинский мобильный номер к формату +639XXXXXXXXX.
// Номера в другом формате возвращаются без изменений, пустой номер дает пустую строку.
func (u *User) FormattedPhone() string {
	if u.Phone == nil {
		return ""
	}
	return FormatPhone(*u.Phone)
}

// FormatPhone нормализует номер телефона
func FormatPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	switch {
	case len(phone) == 11 && strings.HasPrefix(phone, "09") && isDigits(phone):
		return "+63" + phone[1:]
	case len(phone) == 10 && strings.HasPrefix(phone, "9") && isDigits(phone):
		return "+63" + phone
	default:
		return phone
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// UserFilter фильтр выборки пользователей
type UserFilter struct {
	Search  string // Имя или email
	IsAdmin *bool
}

// ProfileUpdate изменяемые клиентом поля профиля
type ProfileUpdate struct {
	Name    string
	Phone   *string
	Address *string
	City    *string
	Zip     *string
	Country *string
}
