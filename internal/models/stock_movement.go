package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement types. The signed sum of all movements for an item must
// equal its current_stock at all times.
const (
	MovementPurchase   = "purchase"
	MovementAdjustment = "adjustment"
	MovementJobUsage   = "job_usage"
	MovementSale       = "sale"
	MovementShopUse    = "shop_use"
)

// StockMovement is an append-only fact: one signed change in an
// inventory item's quantity on hand. Movements are never updated or
// deleted; reversals append a compensating movement.
type StockMovement struct {
	ID              int              `json:"id"`
	InventoryItemID int              `json:"inventory_item_id"`
	Type            string           `json:"type"`
	Quantity        int              `json:"quantity"` // signed delta
	CostPrice       *decimal.Decimal `json:"cost_price"`
	Reference       string           `json:"reference"`
	Notes           string           `json:"notes"`
	UserID          int              `json:"user_id"`
	UserName        string           `json:"user_name,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`

	ItemName string `json:"item_name,omitempty"`
	ItemSKU  string `json:"item_sku,omitempty"`
}

// ValidMovementType reports whether t is one of the known type tags
func ValidMovementType(t string) bool {
	switch t {
	case MovementPurchase, MovementAdjustment, MovementJobUsage, MovementSale, MovementShopUse:
		return true
	}
	return false
}

// DebitMovementType reports whether t is allowed on a stock debit
func DebitMovementType(t string) bool {
	switch t {
	case MovementJobUsage, MovementSale, MovementShopUse:
		return true
	}
	return false
}
