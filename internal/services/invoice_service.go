package services

import (
	"context"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/cache"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
)

type InvoiceService struct {
	Repo        *repositories.InvoiceRepository
	SettingRepo *repositories.SettingRepository
}

func NewInvoiceService(repo *repositories.InvoiceRepository, settingRepo *repositories.SettingRepository) *InvoiceService {
	return &InvoiceService{Repo: repo, SettingRepo: settingRepo}
}

// Create issues an invoice for a ready job card. A negative tax rate in
// the request means "use the configured default".
func (s *InvoiceService) Create(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	if req.Discount.IsNegative() {
		return nil, apperrors.Validation("discount cannot be negative")
	}
	if req.TaxRate.IsNegative() {
		rate, err := s.SettingRepo.TaxRate(ctx)
		if err != nil {
			return nil, err
		}
		req.TaxRate = rate
	}

	inv, err := s.Repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	cache.InvalidateSalesCaches(ctx)
	cache.InvalidateJobCardCaches(ctx)
	return inv, nil
}

func (s *InvoiceService) Get(ctx context.Context, id int) (*models.InvoiceDetail, error) {
	return s.Repo.GetDetail(ctx, id)
}

func (s *InvoiceService) List(ctx context.Context, f models.InvoiceFilter) ([]*models.Invoice, error) {
	return s.Repo.List(ctx, f)
}

func (s *InvoiceService) AddPayment(ctx context.Context, invoiceID int, req *models.AddPaymentRequest, actor models.Actor) (*models.Invoice, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.Validation("payment amount must be positive")
	}
	if !models.ValidPaymentMethod(req.Method) {
		return nil, apperrors.Validation("unknown payment method %q", req.Method)
	}

	inv, err := s.Repo.AddPayment(ctx, invoiceID, req, actor.UserID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateSalesCaches(ctx)
	cache.InvalidateJobCardCaches(ctx)
	return inv, nil
}

func (s *InvoiceService) Cancel(ctx context.Context, invoiceID int) (*models.Invoice, error) {
	inv, err := s.Repo.Cancel(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateSalesCaches(ctx)
	cache.InvalidateJobCardCaches(ctx)
	return inv, nil
}
