package services

import (
	"context"
	"strings"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
)

type VehicleService struct {
	Repo         *repositories.VehicleRepository
	CustomerRepo *repositories.CustomerRepository
	JobCardRepo  *repositories.JobCardRepository
}

func NewVehicleService(repo *repositories.VehicleRepository, customerRepo *repositories.CustomerRepository, jobCardRepo *repositories.JobCardRepository) *VehicleService {
	return &VehicleService{Repo: repo, CustomerRepo: customerRepo, JobCardRepo: jobCardRepo}
}

func (s *VehicleService) Create(ctx context.Context, req *models.CreateVehicleRequest) (*models.Vehicle, error) {
	vehicleNo := strings.ToUpper(strings.TrimSpace(req.VehicleNo))
	if vehicleNo == "" {
		return nil, apperrors.Validation("vehicle number is required")
	}

	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	exists, err := s.Repo.VehicleNoExists(ctx, vehicleNo, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("vehicle %s is already registered", vehicleNo)
	}

	vehicle := &models.Vehicle{
		CustomerID: req.CustomerID,
		VehicleNo:  vehicleNo,
		Make:       strings.TrimSpace(req.Make),
		Model:      strings.TrimSpace(req.Model),
		Color:      strings.TrimSpace(req.Color),
		Year:       req.Year,
		VIN:        strings.TrimSpace(req.VIN),
		Notes:      req.Notes,
	}
	if err := s.Repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Get(ctx context.Context, id int) (*models.Vehicle, error) {
	return s.Repo.Get(ctx, id)
}

// GetDetail returns the vehicle, its owner and recent job history.
func (s *VehicleService) GetDetail(ctx context.Context, id int) (*models.VehicleDetail, error) {
	vehicle, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.VehicleDetail{Vehicle: *vehicle}

	detail.Customer, err = s.CustomerRepo.Get(ctx, vehicle.CustomerID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.JobCardRepo.List(ctx, models.JobCardFilter{Search: vehicle.VehicleNo})
	if err != nil {
		return nil, err
	}
	if len(jobs) > 10 {
		jobs = jobs[:10]
	}
	detail.RecentJobCards = jobs

	return detail, nil
}

func (s *VehicleService) List(ctx context.Context, customerID int, search string) ([]*models.Vehicle, error) {
	return s.Repo.List(ctx, customerID, search)
}

func (s *VehicleService) Update(ctx context.Context, id int, req *models.UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicleNo := strings.ToUpper(strings.TrimSpace(req.VehicleNo))
	if vehicleNo == "" {
		return nil, apperrors.Validation("vehicle number is required")
	}

	vehicle, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.Repo.VehicleNoExists(ctx, vehicleNo, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("vehicle %s is already registered", vehicleNo)
	}

	vehicle.VehicleNo = vehicleNo
	vehicle.Make = strings.TrimSpace(req.Make)
	vehicle.Model = strings.TrimSpace(req.Model)
	vehicle.Color = strings.TrimSpace(req.Color)
	vehicle.Year = req.Year
	vehicle.VIN = strings.TrimSpace(req.VIN)
	vehicle.Notes = req.Notes

	if err := s.Repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
