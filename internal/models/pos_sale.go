package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// POS sale statuses
const (
	SaleStatusCompleted = "completed"
	SaleStatusRefunded  = "refunded"
)

// PosSale is a walk-in retail transaction independent of any job card
type PosSale struct {
	ID            int             `json:"id"`
	SaleNumber    string          `json:"sale_number"` // POS<YYYYMMDD><NNNN>
	CustomerID    *int            `json:"customer_id"`
	UserID        int             `json:"user_id"` // cashier
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Change        decimal.Decimal `json:"change"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`

	CustomerName string `json:"customer_name,omitempty"`
	UserName     string `json:"user_name,omitempty"`
	ItemCount    int    `json:"item_count,omitempty"`
}

// PosSaleDetail includes the sale's line items
type PosSaleDetail struct {
	PosSale
	Items []*PosSaleItem `json:"items"`
}

// PosSaleItem is one cart line; created atomically with a stock debit
type PosSaleItem struct {
	ID              int             `json:"id"`
	PosSaleID       int             `json:"pos_sale_id"`
	InventoryItemID int             `json:"inventory_item_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`

	ItemName string `json:"item_name,omitempty"`
	ItemSKU  string `json:"item_sku,omitempty"`
}

// SaleTotals computes the sale header amounts from the cart lines.
// Change is floored at zero: underpayment yields no negative change.
func SaleTotals(lines []*PosSaleItem, taxRate, discount, paidAmount decimal.Decimal) (subtotal, taxAmount, total, change decimal.Decimal) {
	subtotal = decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l.Quantity, l.UnitPrice, l.Discount))
	}
	taxAmount, total = InvoiceTotals(subtotal, taxRate, discount)
	change = paidAmount.Sub(total)
	if change.IsNegative() {
		change = decimal.Zero
	}
	return subtotal, taxAmount, total, change
}

// CreateSaleRequest represents the request body for a POS checkout
type CreateSaleRequest struct {
	CustomerID    *int              `json:"customer_id"`
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
	Discount      decimal.Decimal   `json:"discount"`
	TaxRate       decimal.Decimal   `json:"tax_rate"`
	Notes         string            `json:"notes"`
}

// SaleItemRequest is one requested cart line
type SaleItemRequest struct {
	InventoryItemID int             `json:"inventory_item_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Discount        decimal.Decimal `json:"discount"`
}

// SaleFilter narrows sale listings
type SaleFilter struct {
	Search   string
	FromDate *time.Time
	ToDate   *time.Time
}

// TodaySalesSummary aggregates the current day's completed sales
type TodaySalesSummary struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalTransactions int             `json:"total_transactions"`
	CashSales         decimal.Decimal `json:"cash_sales"`
	CardSales         decimal.Decimal `json:"card_sales"`
}
