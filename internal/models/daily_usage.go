package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyUsage records internal shop consumption of an inventory item
// (rags, thinner, consumables). Logging one debits the stock ledger
// with a shop_use movement; deleting one credits the stock back.
type DailyUsage struct {
	ID              int       `json:"id"`
	InventoryItemID int       `json:"inventory_item_id"`
	Quantity        int       `json:"quantity"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes"`
	UserID          int       `json:"user_id"`
	UserName        string    `json:"user_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	ItemName     string          `json:"item_name,omitempty"`
	ItemSKU      string          `json:"item_sku,omitempty"`
	ItemCost     decimal.Decimal `json:"item_cost,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
}

// CreateDailyUsageRequest represents the request body for logging usage
type CreateDailyUsageRequest struct {
	InventoryItemID int    `json:"inventory_item_id"`
	Quantity        int    `json:"quantity"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

// DailyUsageSummary aggregates the current day's usage
type DailyUsageSummary struct {
	TotalItems int             `json:"total_items"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	ByReason   map[string]int  `json:"by_reason"`
	Count      int             `json:"count"`
}
