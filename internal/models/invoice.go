package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice lifecycle. paid and cancelled are terminal.
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPartial   = "partial"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// Payment methods
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// ValidPaymentMethod reports whether m names a payment method
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}

// Invoice is a frozen-total billing document generated from a job
// card. Its amounts are snapshotted at creation; later edits to the
// job card's lines do not change them.
type Invoice struct {
	ID            int             `json:"id"`
	InvoiceNumber string          `json:"invoice_number"` // INV<YYYY><MM><NNNN>
	JobCardID     int             `json:"job_card_id"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"tax_rate"` // percent
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	PaidAt        *time.Time      `json:"paid_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	JobNumber     string `json:"job_number,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	VehicleNo     string `json:"vehicle_no,omitempty"`
}

// InvoiceDetail includes the job card snapshot source and payments
type InvoiceDetail struct {
	Invoice
	JobCard  *JobCardDetail `json:"job_card"`
	Payments []*Payment     `json:"payments"`
}

// Payment is an append-only record against an invoice
type Payment struct {
	ID        int             `json:"id"`
	InvoiceID int             `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
	UserID    int             `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// InvoiceTotals is the snapshot arithmetic shared by invoicing and POS:
// taxAmount = subtotal x rate / 100, total = subtotal + tax - discount.
func InvoiceTotals(subtotal, taxRate, discount decimal.Decimal) (taxAmount, total decimal.Decimal) {
	taxAmount = subtotal.Mul(taxRate).Div(decimal.NewFromInt(100))
	total = subtotal.Add(taxAmount).Sub(discount)
	return taxAmount, total
}

// SettlementStatus returns the invoice status implied by a paid amount.
// Overpayment is accepted: anything at or above total settles the
// invoice.
func SettlementStatus(paidAmount, total decimal.Decimal) string {
	if paidAmount.GreaterThanOrEqual(total) {
		return InvoiceStatusPaid
	}
	return InvoiceStatusPartial
}

// CreateInvoiceRequest represents the request body for invoicing a job card
type CreateInvoiceRequest struct {
	JobCardID int             `json:"job_card_id"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Discount  decimal.Decimal `json:"discount"`
	Notes     string          `json:"notes"`
}

// AddPaymentRequest represents the request body for recording a payment
type AddPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// InvoiceFilter narrows invoice listings
type InvoiceFilter struct {
	Status   string
	Search   string
	FromDate *time.Time
	ToDate   *time.Time
}
