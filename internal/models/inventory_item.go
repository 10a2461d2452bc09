package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID           int             `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   *int            `json:"category_id"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CurrentStock int             `json:"current_stock"` // mutated only through movement-producing operations
	ReorderLevel int             `json:"reorder_level"`
	Unit         string          `json:"unit"`
	Barcode      *string         `json:"barcode"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	CategoryName string `json:"category_name,omitempty"`
}

// InventoryItemDetail includes the most recent stock movements
type InventoryItemDetail struct {
	InventoryItem
	StockMovements []*StockMovement `json:"stock_movements"`
}

// CreateInventoryItemRequest represents the request body for creating an item
type CreateInventoryItemRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   *int            `json:"category_id"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CurrentStock int             `json:"current_stock"` // seeds an initial movement when > 0
	ReorderLevel int             `json:"reorder_level"`
	Unit         string          `json:"unit"`
	Barcode      *string         `json:"barcode"`
}

// UpdateInventoryItemRequest represents the request body for updating an
// item. CurrentStock is deliberately absent: stock changes only through
// the stock operations below.
type UpdateInventoryItemRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   *int            `json:"category_id"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ReorderLevel int             `json:"reorder_level"`
	Unit         string          `json:"unit"`
	Barcode      *string         `json:"barcode"`
	IsActive     *bool           `json:"is_active"`
}

// AddStockRequest represents the request body for receiving stock
type AddStockRequest struct {
	Quantity  int              `json:"quantity"`
	CostPrice *decimal.Decimal `json:"cost_price"`
	Reference string           `json:"reference"`
	Notes     string           `json:"notes"`
}

// AdjustStockRequest sets the absolute stock level
type AdjustStockRequest struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}
