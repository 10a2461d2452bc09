package services

import (
	"context"
	"strings"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/cache"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
)

type JobCardService struct {
	Repo         *repositories.JobCardRepository
	CustomerRepo *repositories.CustomerRepository
	VehicleRepo  *repositories.VehicleRepository
	ServiceRepo  *repositories.ServiceRepository
}

func NewJobCardService(repo *repositories.JobCardRepository, customerRepo *repositories.CustomerRepository, vehicleRepo *repositories.VehicleRepository, serviceRepo *repositories.ServiceRepository) *JobCardService {
	return &JobCardService{Repo: repo, CustomerRepo: customerRepo, VehicleRepo: vehicleRepo, ServiceRepo: serviceRepo}
}

func (s *JobCardService) Create(ctx context.Context, req *models.CreateJobCardRequest) (*models.JobCard, error) {
	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	vehicle, err := s.VehicleRepo.Get(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.CustomerID != req.CustomerID {
		return nil, apperrors.Validation("vehicle %s does not belong to customer %d", vehicle.VehicleNo, req.CustomerID)
	}

	card, err := s.Repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	cache.InvalidateJobCardCaches(ctx)
	return card, nil
}

func (s *JobCardService) Get(ctx context.Context, id int) (*models.JobCardDetail, error) {
	return s.Repo.GetDetail(ctx, id)
}

func (s *JobCardService) List(ctx context.Context, f models.JobCardFilter) ([]*models.JobCard, error) {
	if f.Status != "" && !models.ValidJobStatus(f.Status) {
		return nil, apperrors.Validation("unknown job status %q", f.Status)
	}
	return s.Repo.List(ctx, f)
}

func (s *JobCardService) Stats(ctx context.Context) (*models.JobCardStats, error) {
	return s.Repo.Stats(ctx)
}

func (s *JobCardService) Update(ctx context.Context, id int, req *models.UpdateJobCardRequest) (*models.JobCard, error) {
	card, err := s.Repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	cache.InvalidateJobCardCaches(ctx)
	return card, nil
}

func (s *JobCardService) UpdateStatus(ctx context.Context, id int, req *models.UpdateJobStatusRequest) (*models.JobCard, error) {
	card, err := s.Repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}
	cache.InvalidateJobCardCaches(ctx)
	return card, nil
}

func (s *JobCardService) Delete(ctx context.Context, id int, actor models.Actor) error {
	if err := s.Repo.Delete(ctx, id, actor.UserID); err != nil {
		return err
	}
	cache.InvalidateJobCardCaches(ctx)
	return nil
}

func (s *JobCardService) AddService(ctx context.Context, jobCardID int, req *models.AddJobServiceRequest) (*models.JobService, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive")
	}
	if req.UnitPrice.IsNegative() || req.Discount.IsNegative() {
		return nil, apperrors.Validation("price and discount cannot be negative")
	}

	svc, err := s.ServiceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, apperrors.Validation("service %q is inactive", svc.Name)
	}
	// Default the line price from the catalog when the caller sends none.
	if req.UnitPrice.IsZero() {
		req.UnitPrice = svc.BasePrice
	}

	line, err := s.Repo.AddService(ctx, jobCardID, req)
	if err != nil {
		return nil, err
	}
	line.ServiceName = svc.Name
	cache.InvalidateJobCardCaches(ctx)
	return line, nil
}

func (s *JobCardService) RemoveService(ctx context.Context, jobCardID, lineID int) error {
	if err := s.Repo.RemoveService(ctx, jobCardID, lineID); err != nil {
		return err
	}
	cache.InvalidateJobCardCaches(ctx)
	return nil
}

func (s *JobCardService) AddPart(ctx context.Context, jobCardID int, req *models.AddJobPartRequest, actor models.Actor) (*models.JobPart, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive")
	}
	if req.UnitPrice.IsNegative() || req.Discount.IsNegative() {
		return nil, apperrors.Validation("price and discount cannot be negative")
	}

	line, err := s.Repo.AddPart(ctx, jobCardID, req, actor.UserID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateJobCardCaches(ctx)
	return line, nil
}

func (s *JobCardService) RemovePart(ctx context.Context, jobCardID, lineID int, actor models.Actor) error {
	if err := s.Repo.RemovePart(ctx, jobCardID, lineID, actor.UserID); err != nil {
		return err
	}
	cache.InvalidateJobCardCaches(ctx)
	return nil
}

func validateManualEntry(req *models.ManualEntryRequest) error {
	if strings.TrimSpace(req.Description) == "" {
		return apperrors.Validation("description is required")
	}
	if req.Category == "" {
		req.Category = models.ManualCategoryOther
	}
	if !models.ValidManualCategory(req.Category) {
		return apperrors.Validation("unknown manual entry category %q", req.Category)
	}
	if req.EstimatedCost.IsNegative() {
		return apperrors.Validation("estimated cost cannot be negative")
	}
	if req.ActualCost != nil && req.ActualCost.IsNegative() {
		return apperrors.Validation("actual cost cannot be negative")
	}
	return nil
}

func (s *JobCardService) AddManualEntry(ctx context.Context, jobCardID int, req *models.ManualEntryRequest) (*models.JobManualEntry, error) {
	if err := validateManualEntry(req); err != nil {
		return nil, err
	}
	entry, err := s.Repo.AddManualEntry(ctx, jobCardID, req)
	if err != nil {
		return nil, err
	}
	cache.InvalidateJobCardCaches(ctx)
	return entry, nil
}

func (s *JobCardService) UpdateManualEntry(ctx context.Context, jobCardID, entryID int, req *models.ManualEntryRequest) (*models.JobManualEntry, error) {
	if err := validateManualEntry(req); err != nil {
		return nil, err
	}
	entry, err := s.Repo.UpdateManualEntry(ctx, jobCardID, entryID, req)
	if err != nil {
		return nil, err
	}
	cache.InvalidateJobCardCaches(ctx)
	return entry, nil
}

func (s *JobCardService) RemoveManualEntry(ctx context.Context, jobCardID, entryID int) error {
	if err := s.Repo.RemoveManualEntry(ctx, jobCardID, entryID); err != nil {
		return err
	}
	cache.InvalidateJobCardCaches(ctx)
	return nil
}
