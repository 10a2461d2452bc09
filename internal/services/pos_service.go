package services

import (
	"context"
	"encoding/json"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/cache"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
)

type PosService struct {
	Repo        *repositories.PosSaleRepository
	SettingRepo *repositories.SettingRepository
}

func NewPosService(repo *repositories.PosSaleRepository, settingRepo *repositories.SettingRepository) *PosService {
	return &PosService{Repo: repo, SettingRepo: settingRepo}
}

// Checkout validates the cart and runs the atomic sale. A negative tax
// rate means "use the configured default".
func (s *PosService) Checkout(ctx context.Context, req *models.CreateSaleRequest, actor models.Actor) (*models.PosSaleDetail, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.Validation("sale must contain at least one item")
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, apperrors.Validation("unknown payment method %q", req.PaymentMethod)
	}
	if req.Discount.IsNegative() {
		return nil, apperrors.Validation("discount cannot be negative")
	}

	seen := make(map[int]bool, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, apperrors.Validation("item quantity must be positive")
		}
		if it.UnitPrice.IsNegative() || it.Discount.IsNegative() {
			return nil, apperrors.Validation("price and discount cannot be negative")
		}
		if seen[it.InventoryItemID] {
			return nil, apperrors.Validation("item %d appears more than once; merge the lines", it.InventoryItemID)
		}
		seen[it.InventoryItemID] = true
	}

	if req.TaxRate.IsNegative() {
		rate, err := s.SettingRepo.TaxRate(ctx)
		if err != nil {
			return nil, err
		}
		req.TaxRate = rate
	}

	sale, err := s.Repo.Create(ctx, req, actor.UserID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateSalesCaches(ctx)
	return sale, nil
}

func (s *PosService) Get(ctx context.Context, id int) (*models.PosSaleDetail, error) {
	return s.Repo.GetDetail(ctx, id)
}

func (s *PosService) List(ctx context.Context, f models.SaleFilter) ([]*models.PosSale, error) {
	return s.Repo.List(ctx, f)
}

func (s *PosService) Refund(ctx context.Context, id int, actor models.Actor) (*models.PosSale, error) {
	sale, err := s.Repo.Refund(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateSalesCaches(ctx)
	return sale, nil
}

// TodaySummary serves the POS header widget, cached briefly since the
// till polls it.
func (s *PosService) TodaySummary(ctx context.Context) (*models.TodaySalesSummary, error) {
	if data, ok := cache.GetCached(ctx, cache.TodaySalesKey); ok {
		var summary models.TodaySalesSummary
		if err := json.Unmarshal(data, &summary); err == nil {
			return &summary, nil
		}
	}

	summary, err := s.Repo.TodaySummary(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(summary); err == nil {
		cache.SetCached(ctx, cache.TodaySalesKey, data, cache.TodaySalesTTL)
	}
	return summary, nil
}
