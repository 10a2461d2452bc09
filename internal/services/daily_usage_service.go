package services

import (
	"context"
	"strings"
	"time"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
)

type DailyUsageService struct {
	Repo *repositories.DailyUsageRepository
}

func NewDailyUsageService(repo *repositories.DailyUsageRepository) *DailyUsageService {
	return &DailyUsageService{Repo: repo}
}

func (s *DailyUsageService) Create(ctx context.Context, req *models.CreateDailyUsageRequest, actor models.Actor) (*models.DailyUsage, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive")
	}
	if strings.TrimSpace(req.Reason) == "" {
		req.Reason = "shop_floor"
	}
	return s.Repo.Create(ctx, req, actor.UserID)
}

func (s *DailyUsageService) List(ctx context.Context, from, to *time.Time) ([]*models.DailyUsage, error) {
	return s.Repo.List(ctx, from, to)
}

func (s *DailyUsageService) Delete(ctx context.Context, id int, actor models.Actor) error {
	return s.Repo.Delete(ctx, id, actor.UserID)
}

func (s *DailyUsageService) TodaySummary(ctx context.Context) (*models.DailyUsageSummary, error) {
	return s.Repo.TodaySummary(ctx)
}
