package users

import "github.com/m04kA/SMC-ShopAdmin/internal/service/users/models"

// CreateUserRequest HTTP запрос на создание пользователя
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	IsAdmin  bool    `json:"isAdmin"`
}

func (r *CreateUserRequest) toServiceRequest() *models.CreateUserRequest {
	return &models.CreateUserRequest{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Phone:    r.Phone,
		IsAdmin:  r.IsAdmin,
	}
}

// UpdateUserRequest HTTP запрос на изменение пользователя
type UpdateUserRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	IsAdmin bool   `json:"isAdmin"`
}

func (r *UpdateUserRequest) toServiceRequest() *models.UpdateUserRequest {
	return &models.UpdateUserRequest{Name: r.Name, Email: r.Email, IsAdmin: r.IsAdmin}
}

// UpdateProfileRequest HTTP запрос на изменение своего профиля
type UpdateProfileRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	City    *string `json:"city" validate:"omitempty,max=100"`
	Zip     *string `json:"zip" validate:"omitempty,max=20"`
	Country *string `json:"country" validate:"omitempty,max=100"`
}

func (r *UpdateProfileRequest) toServiceRequest() *models.UpdateProfileRequest {
	return &models.UpdateProfileRequest{
		Name:    r.Name,
		Phone:   r.Phone,
		Address: r.Address,
		City:    r.City,
		Zip:     r.Zip,
		Country: r.Country,
	}
}
