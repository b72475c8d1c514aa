package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	userRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/user"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/users/models"
	"github.com/m04kA/SMC-ShopAdmin/pkg/ptr"
)

// Service сервис для работы с пользователями
type Service struct {
	userRepo UserRepository
	hasher   PasswordHasher
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, hasher PasswordHasher, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

// List получает страницу пользователей с поиском по имени и email
func (s *Service) List(ctx context.Context, search string, page domain.Page) (*models.UserListResponse, error) {
	s.logger.Info("List: fetching users, search=%q, page=%d", search, page.Number)

	users, total, err := s.userRepo.List(ctx, domain.UserFilter{Search: strings.TrimSpace(search)}, page)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.UserListResponse{
		Users:      models.FromDomainUserList(users),
		Pagination: domain.NewPageInfo(page, total, len(users)),
	}, nil
}

// GetByID получает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainUser(user), nil
}

// IsAdmin проверяет, является ли пользователь администратором.
// Несуществующий пользователь администратором не считается.
func (s *Service) IsAdmin(ctx context.Context, id int64) (bool, error) {
	user, err := s.get(ctx, "IsAdmin", id)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// Create создает пользователя с bcrypt хэшем пароля
func (s *Service) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("Create: creating user email=%s, isAdmin=%t", req.Email, req.IsAdmin)

	if len(req.Password) < domain.MinPasswordLength {
		s.logger.Warn("Create: password too short for email=%s", req.Email)
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Create: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Create - hash password: %v", ErrInternal, err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Phone:        req.Phone,
		IsAdmin:      req.IsAdmin,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			s.logger.Warn("Create: email=%s already taken", user.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created user id=%d", created.ID)
	return models.FromDomainUser(created), nil
}

// Update обновляет имя, email и роль пользователя. Email уникален среди остальных пользователей.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("Update: updating user id=%d", id)

	user, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.IsAdmin = req.IsAdmin

	if err := s.save(ctx, "Update", user); err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated user id=%d", id)
	return models.FromDomainUser(user), nil
}

// Delete удаляет пользователя
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting user id=%d", id)

	if err := s.userRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, userRepo.ErrUserNotFound):
			s.logger.Warn("Delete: user id=%d not found", id)
			return ErrUserNotFound
		case errors.Is(err, userRepo.ErrUserInUse):
			s.logger.Warn("Delete: user id=%d has bookings", id)
			return ErrUserInUse
		}
		s.logger.Error("Delete: repository error for user id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted user id=%d", id)
	return nil
}

// Options список пользователей для выпадающего списка
func (s *Service) Options(ctx context.Context) ([]models.UserOption, error) {
	users, err := s.userRepo.GetAll(ctx, domain.UserFilter{})
	if err != nil {
		s.logger.Error("Options: repository error: %v", err)
		return nil, fmt.Errorf("%w: Options - repository error: %v", ErrInternal, err)
	}

	options := make([]models.UserOption, 0, len(users))
	for _, u := range users {
		options = append(options, models.UserOption{ID: u.ID, Name: u.Name})
	}

	return options, nil
}

// GetProfile получает профиль текущего пользователя
func (s *Service) GetProfile(ctx context.Context, userID int64) (*models.UserResponse, error) {
	return s.GetByID(ctx, userID)
}

// UpdateProfile обновляет контактные данные текущего пользователя
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateProfile: updating profile of user id=%d", userID)

	user, err := s.get(ctx, "UpdateProfile", userID)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Phone = trimmed(req.Phone)
	user.Address = trimmed(req.Address)
	user.City = trimmed(req.City)
	user.Zip = trimmed(req.Zip)
	user.Country = trimmed(req.Country)

	if err := s.save(ctx, "UpdateProfile", user); err != nil {
		return nil, err
	}

	s.logger.Info("UpdateProfile: successfully updated profile of user id=%d", userID)
	return models.FromDomainUser(user), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return user, nil
}

func (s *Service) save(ctx context.Context, op string, user *domain.User) error {
	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, userRepo.ErrDuplicateEmail):
			s.logger.Warn("%s: email=%s already taken", op, user.Email)
			return ErrEmailTaken
		case errors.Is(err, userRepo.ErrUserNotFound):
			s.logger.Warn("%s: user id=%d not found during update", op, user.ID)
			return ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user id=%d: %v", op, user.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}

// trimmed обрезает пробелы, пустая строка становится nil
func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return ptr.Ptr(t)
}
