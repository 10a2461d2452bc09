package services

import (
	"context"
	"strings"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
)

type InventoryService struct {
	ItemRepo     *repositories.InventoryItemRepository
	MovementRepo *repositories.StockMovementRepository
	CategoryRepo *repositories.CategoryRepository
}

func NewInventoryService(itemRepo *repositories.InventoryItemRepository, movementRepo *repositories.StockMovementRepository, categoryRepo *repositories.CategoryRepository) *InventoryService {
	return &InventoryService{ItemRepo: itemRepo, MovementRepo: movementRepo, CategoryRepo: categoryRepo}
}

func (s *InventoryService) CreateItem(ctx context.Context, req *models.CreateInventoryItemRequest, actor models.Actor) (*models.InventoryItem, error) {
	sku := strings.ToUpper(strings.TrimSpace(req.SKU))
	if sku == "" || strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("sku and name are required")
	}
	if req.CostPrice.IsNegative() || req.SellingPrice.IsNegative() {
		return nil, apperrors.Validation("prices cannot be negative")
	}
	if req.CurrentStock < 0 {
		return nil, apperrors.Validation("opening stock cannot be negative")
	}
	if req.CategoryID != nil {
		if _, err := s.CategoryRepo.Get(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = "pcs"
	}

	item := &models.InventoryItem{
		SKU:          sku,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		CurrentStock: req.CurrentStock,
		ReorderLevel: req.ReorderLevel,
		Unit:         unit,
		Barcode:      req.Barcode,
	}
	if err := s.ItemRepo.Create(ctx, item, actor.UserID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) GetItem(ctx context.Context, id int) (*models.InventoryItem, error) {
	return s.ItemRepo.Get(ctx, id)
}

// GetItemDetail returns the item with its recent ledger history.
func (s *InventoryService) GetItemDetail(ctx context.Context, id int) (*models.InventoryItemDetail, error) {
	item, err := s.ItemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	movements, err := s.MovementRepo.List(ctx, repositories.StockMovementFilter{ItemID: id, Limit: 50})
	if err != nil {
		return nil, err
	}
	return &models.InventoryItemDetail{InventoryItem: *item, StockMovements: movements}, nil
}

func (s *InventoryService) Lookup(ctx context.Context, code string) (*models.InventoryItem, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.Validation("lookup code is required")
	}
	return s.ItemRepo.Lookup(ctx, code)
}

func (s *InventoryService) ListItems(ctx context.Context, f repositories.InventoryItemFilter) ([]*models.InventoryItem, error) {
	return s.ItemRepo.List(ctx, f)
}

func (s *InventoryService) UpdateItem(ctx context.Context, id int, req *models.UpdateInventoryItemRequest) (*models.InventoryItem, error) {
	sku := strings.ToUpper(strings.TrimSpace(req.SKU))
	if sku == "" || strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("sku and name are required")
	}
	if req.CostPrice.IsNegative() || req.SellingPrice.IsNegative() {
		return nil, apperrors.Validation("prices cannot be negative")
	}

	item, err := s.ItemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.SKU = sku
	item.Name = strings.TrimSpace(req.Name)
	item.Description = req.Description
	item.CategoryID = req.CategoryID
	item.CostPrice = req.CostPrice
	item.SellingPrice = req.SellingPrice
	item.ReorderLevel = req.ReorderLevel
	item.Unit = req.Unit
	item.Barcode = req.Barcode
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.ItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) DeactivateItem(ctx context.Context, id int) error {
	return s.ItemRepo.Deactivate(ctx, id)
}

func (s *InventoryService) ReceiveStock(ctx context.Context, itemID int, req *models.AddStockRequest, actor models.Actor) (*models.InventoryItem, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive")
	}
	if req.CostPrice != nil && req.CostPrice.IsNegative() {
		return nil, apperrors.Validation("cost price cannot be negative")
	}
	return s.ItemRepo.ReceiveStock(ctx, itemID, req, actor.UserID)
}

func (s *InventoryService) AdjustStock(ctx context.Context, itemID int, req *models.AdjustStockRequest, actor models.Actor) (*models.InventoryItem, error) {
	if req.Quantity < 0 {
		return nil, apperrors.Validation("adjusted quantity cannot be negative")
	}
	return s.ItemRepo.AdjustStock(ctx, itemID, req, actor.UserID)
}

func (s *InventoryService) ListMovements(ctx context.Context, f repositories.StockMovementFilter) ([]*models.StockMovement, error) {
	if f.Type != "" && !models.ValidMovementType(f.Type) {
		return nil, apperrors.Validation("unknown movement type %q", f.Type)
	}
	return s.MovementRepo.List(ctx, f)
}
