package services

import (
	"context"
	"strings"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
)

// CatalogService manages categories, service categories and the
// service price list.
type CatalogService struct {
	CategoryRepo *repositories.CategoryRepository
	ServiceRepo  *repositories.ServiceRepository
}

func NewCatalogService(categoryRepo *repositories.CategoryRepository, serviceRepo *repositories.ServiceRepository) *CatalogService {
	return &CatalogService{CategoryRepo: categoryRepo, ServiceRepo: serviceRepo}
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("category name is required")
	}

	exists, err := s.CategoryRepo.NameExists(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("category %q already exists", name)
	}

	category := &models.Category{Name: name, Description: req.Description}
	if err := s.CategoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.CategoryRepo.List(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int, req *models.CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("category name is required")
	}

	category, err := s.CategoryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.CategoryRepo.NameExists(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("category %q already exists", name)
	}

	category.Name = name
	category.Description = req.Description
	if err := s.CategoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int) error {
	return s.CategoryRepo.Delete(ctx, id)
}

func (s *CatalogService) CreateServiceCategory(ctx context.Context, req *models.CategoryRequest) (*models.ServiceCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("category name is required")
	}

	category := &models.ServiceCategory{Name: name, Description: req.Description}
	if err := s.CategoryRepo.CreateServiceCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) ListServiceCategories(ctx context.Context) ([]*models.ServiceCategory, error) {
	return s.CategoryRepo.ListServiceCategories(ctx)
}

func (s *CatalogService) UpdateServiceCategory(ctx context.Context, id int, req *models.CategoryRequest) (*models.ServiceCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("category name is required")
	}

	category, err := s.CategoryRepo.GetServiceCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	category.Description = req.Description
	if err := s.CategoryRepo.UpdateServiceCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteServiceCategory(ctx context.Context, id int) error {
	return s.CategoryRepo.DeleteServiceCategory(ctx, id)
}

func (s *CatalogService) CreateService(ctx context.Context, req *models.ServiceRequest) (*models.Service, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("service name is required")
	}
	if req.BasePrice.IsNegative() {
		return nil, apperrors.Validation("base price cannot be negative")
	}
	if req.CategoryID != nil {
		if _, err := s.CategoryRepo.GetServiceCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	service := &models.Service{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Duration:    req.Duration,
		IsActive:    true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if err := s.ServiceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *CatalogService) GetService(ctx context.Context, id int) (*models.Service, error) {
	return s.ServiceRepo.Get(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context, categoryID int, search string, includeInactive bool) ([]*models.Service, error) {
	return s.ServiceRepo.List(ctx, categoryID, search, includeInactive)
}

func (s *CatalogService) UpdateService(ctx context.Context, id int, req *models.ServiceRequest) (*models.Service, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("service name is required")
	}
	if req.BasePrice.IsNegative() {
		return nil, apperrors.Validation("base price cannot be negative")
	}

	service, err := s.ServiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	service.CategoryID = req.CategoryID
	service.Name = strings.TrimSpace(req.Name)
	service.Description = req.Description
	service.BasePrice = req.BasePrice
	service.Duration = req.Duration
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := s.ServiceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id int) error {
	return s.ServiceRepo.Delete(ctx, id)
}
