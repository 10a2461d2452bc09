package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/cache"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
)

type SettingService struct {
	Repo *repositories.SettingRepository
}

func NewSettingService(repo *repositories.SettingRepository) *SettingService {
	return &SettingService{Repo: repo}
}

func (s *SettingService) List(ctx context.Context) ([]*models.Setting, error) {
	return s.Repo.List(ctx)
}

func (s *SettingService) Get(ctx context.Context, key string) (*models.Setting, error) {
	return s.Repo.Get(ctx, key)
}

func validateSetting(key, value string) error {
	if key == models.SettingTaxRate {
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return apperrors.Validation("tax rate must be a number")
		}
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return apperrors.Validation("tax rate must be between 0 and 100")
		}
	}
	return nil
}

func (s *SettingService) Update(ctx context.Context, key string, req *models.UpdateSettingRequest, actor models.Actor) (*models.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.Validation("setting key is required")
	}
	if err := validateSetting(key, req.Value); err != nil {
		return nil, err
	}

	setting, err := s.Repo.Upsert(ctx, key, req.Value, actor.UserID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateSettingCaches(ctx)
	return setting, nil
}

func (s *SettingService) BulkUpdate(ctx context.Context, req *models.BulkSettingsRequest, actor models.Actor) ([]*models.Setting, error) {
	if len(req.Settings) == 0 {
		return nil, apperrors.Validation("no settings provided")
	}
	for key, value := range req.Settings {
		if err := validateSetting(key, value); err != nil {
			return nil, err
		}
	}

	var updated []*models.Setting
	for key, value := range req.Settings {
		setting, err := s.Repo.Upsert(ctx, key, value, actor.UserID)
		if err != nil {
			return nil, err
		}
		updated = append(updated, setting)
	}
	cache.InvalidateSettingCaches(ctx)
	return updated, nil
}
