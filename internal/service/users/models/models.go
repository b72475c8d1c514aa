package models

import (
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// Request модели

// CreateUserRequest запрос на создание пользователя
type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
	Phone    *string
	IsAdmin  bool
}

// UpdateUserRequest запрос на обновление пользователя администратором
type UpdateUserRequest struct {
	Name    string
	Email   string
	IsAdmin bool
}

// UpdateProfileRequest запрос на обновление своего профиля
type UpdateProfileRequest struct {
	Name    string
	Phone   *string
	Address *string
	City    *string
	Zip     *string
	Country *string
}

// Response модели

// UserResponse данные пользователя
type UserResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone,omitempty"`
	FormattedPhone  string    `json:"formattedPhone,omitempty"`
	Address         *string   `json:"address,omitempty"`
	City            *string   `json:"city,omitempty"`
	Zip             *string   `json:"zip,omitempty"`
	Country         *string   `json:"country,omitempty"`
	ProfilePhotoURL *string   `json:"profilePhotoUrl,omitempty"`
	IsAdmin         bool      `json:"isAdmin"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserListResponse страница пользователей
type UserListResponse struct {
	Users      []UserResponse
	Pagination domain.PageInfo
}

// UserOption элемент выпадающего списка пользователей
type UserOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		FormattedPhone:  u.FormattedPhone(),
		Address:         u.Address,
		City:            u.City,
		Zip:             u.Zip,
		Country:         u.Country,
		ProfilePhotoURL: u.ProfilePhotoURL,
		IsAdmin:         u.IsAdmin,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// FromDomainUserList конвертирует список domain моделей в DTO
func FromDomainUserList(users []*domain.User) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		if dto := FromDomainUser(u); dto != nil {
			resp = append(resp, *dto)
		}
	}
	return resp
}
