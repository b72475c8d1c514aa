package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ShopAdmin/internal/infra/storage/service"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List получает страницу услуг с поиском по названию и описанию
func (s *Service) List(ctx context.Context, search string, page domain.Page) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services, search=%q, page=%d", search, page.Number)

	services, total, err := s.serviceRepo.List(ctx, domain.ServiceFilter{Search: strings.TrimSpace(search)}, page)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.ServiceListResponse{
		Services:   models.FromDomainServiceList(services),
		Pagination: domain.NewPageInfo(page, total, len(services)),
	}, nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainService(service), nil
}

// Create создает услугу. По умолчанию услуга активна.
func (s *Service) Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%s", req.Name)

	if err := validate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        isActive,
		Image:           req.Image,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// Update обновляет услугу
func (s *Service) Update(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	if err := validate(req); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	service, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	service.Name = strings.TrimSpace(req.Name)
	service.Description = req.Description
	service.Price = req.Price
	service.DurationMinutes = req.DurationMinutes
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if req.Image != nil {
		service.Image = req.Image
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found during update", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(service), nil
}

// Delete удаляет услугу
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting service id=%d", id)

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, serviceRepo.ErrServiceNotFound):
			s.logger.Warn("Delete: service id=%d not found", id)
			return ErrServiceNotFound
		case errors.Is(err, serviceRepo.ErrServiceInUse):
			s.logger.Warn("Delete: service id=%d has bookings", id)
			return ErrServiceInUse
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted service id=%d", id)
	return nil
}

// Options активные услуги для выпадающего списка
func (s *Service) Options(ctx context.Context) ([]models.ServiceOption, error) {
	options, err := s.serviceRepo.GetOptions(ctx)
	if err != nil {
		s.logger.Error("Options: repository error: %v", err)
		return nil, fmt.Errorf("%w: Options - repository error: %v", ErrInternal, err)
	}

	resp := make([]models.ServiceOption, 0, len(options))
	for _, o := range options {
		resp = append(resp, models.ServiceOption{ID: o.ID, Name: o.Name, Price: o.Price})
	}

	return resp, nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return service, nil
}

func validate(req *models.ServiceRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}
