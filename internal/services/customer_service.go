package services

import (
	"context"
	"strings"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
)

type CustomerService struct {
	Repo        *repositories.CustomerRepository
	VehicleRepo *repositories.VehicleRepository
	JobCardRepo *repositories.JobCardRepository
}

func NewCustomerService(repo *repositories.CustomerRepository, vehicleRepo *repositories.VehicleRepository, jobCardRepo *repositories.JobCardRepository) *CustomerService {
	return &CustomerService{Repo: repo, VehicleRepo: vehicleRepo, JobCardRepo: jobCardRepo}
}

func (s *CustomerService) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("customer name is required")
	}

	customer := &models.Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id int) (*models.Customer, error) {
	return s.Repo.Get(ctx, id)
}

// GetDetail returns the customer with their vehicles and most recent
// job cards.
func (s *CustomerService) GetDetail(ctx context.Context, id int) (*models.CustomerDetail, error) {
	customer, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.CustomerDetail{Customer: *customer}

	detail.Vehicles, err = s.VehicleRepo.List(ctx, id, "")
	if err != nil {
		return nil, err
	}

	jobs, err := s.JobCardRepo.List(ctx, models.JobCardFilter{CustomerID: id})
	if err != nil {
		return nil, err
	}
	if len(jobs) > 10 {
		jobs = jobs[:10]
	}
	detail.RecentJobCards = jobs

	return detail, nil
}

func (s *CustomerService) List(ctx context.Context, search string) ([]*models.Customer, error) {
	return s.Repo.List(ctx, search)
}

func (s *CustomerService) Update(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("customer name is required")
	}

	customer, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Name = strings.TrimSpace(req.Name)
	customer.Phone = strings.TrimSpace(req.Phone)
	customer.Email = strings.TrimSpace(req.Email)
	customer.Address = req.Address
	customer.Notes = req.Notes

	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
