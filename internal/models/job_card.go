package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job card lifecycle. Transitions are forward-only; the generic status
// endpoint rejects backward moves, and the single sanctioned reversal
// (invoice cancellation reverting invoiced to ready) happens inside the
// invoice repository.
const (
	JobStatusPending      = "pending"
	JobStatusInProgress   = "in_progress"
	JobStatusQualityCheck = "quality_check"
	JobStatusReady        = "ready"
	JobStatusInvoiced     = "invoiced"
	JobStatusPaid         = "paid"
)

var jobStatusOrder = map[string]int{
	JobStatusPending:      0,
	JobStatusInProgress:   1,
	JobStatusQualityCheck: 2,
	JobStatusReady:        3,
	JobStatusInvoiced:     4,
	JobStatusPaid:         5,
}

// ValidJobStatus reports whether s names a job card status
func ValidJobStatus(s string) bool {
	_, ok := jobStatusOrder[s]
	return ok
}

// CanTransitionJobStatus reports whether moving from one status to
// another is a legal forward transition.
func CanTransitionJobStatus(from, to string) bool {
	f, okF := jobStatusOrder[from]
	t, okT := jobStatusOrder[to]
	return okF && okT && t > f
}

// Manual entry categories
const (
	ManualCategoryTinkering = "tinkering"
	ManualCategoryPainting  = "painting"
	ManualCategoryOther     = "other"
)

// ValidManualCategory reports whether c names a manual entry category
func ValidManualCategory(c string) bool {
	switch c {
	case ManualCategoryTinkering, ManualCategoryPainting, ManualCategoryOther:
		return true
	}
	return false
}

// JobCard is the work-order aggregate for one vehicle visit
type JobCard struct {
	ID           int             `json:"id"`
	JobNumber    string          `json:"job_number"` // JC<YYYY><MM><NNNN>
	CustomerID   int             `json:"customer_id"`
	VehicleID    int             `json:"vehicle_id"`
	AssignedToID *int            `json:"assigned_to_id"`
	Odometer     *int            `json:"odometer"`
	Notes        string          `json:"notes"`
	Status       string          `json:"status"`
	ActualTotal  decimal.Decimal `json:"actual_total"` // recomputed from lines, never maintained incrementally
	CompletedAt  *time.Time      `json:"completed_at"`
	PaidAt       *time.Time      `json:"paid_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	CustomerName   string `json:"customer_name,omitempty"`
	CustomerPhone  string `json:"customer_phone,omitempty"`
	VehicleNo      string `json:"vehicle_no,omitempty"`
	VehicleMake    string `json:"vehicle_make,omitempty"`
	VehicleModel   string `json:"vehicle_model,omitempty"`
	AssignedToName string `json:"assigned_to_name,omitempty"`
}

// JobCardDetail includes every line collection and the invoice, if any
type JobCardDetail struct {
	JobCard
	Customer      *Customer         `json:"customer"`
	Vehicle       *Vehicle          `json:"vehicle"`
	Services      []*JobService     `json:"services"`
	Parts         []*JobPart        `json:"parts"`
	ManualEntries []*JobManualEntry `json:"manual_entries"`
	Invoice       *Invoice          `json:"invoice,omitempty"`
}

// JobService is a priced service line
type JobService struct {
	ID        int             `json:"id"`
	JobCardID int             `json:"job_card_id"`
	ServiceID int             `json:"service_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`

	ServiceName string `json:"service_name,omitempty"`
}

// JobPart is a parts line; creating one debits the stock ledger and
// deleting one credits it back.
type JobPart struct {
	ID              int             `json:"id"`
	JobCardID       int             `json:"job_card_id"`
	InventoryItemID int             `json:"inventory_item_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`

	ItemName string `json:"item_name,omitempty"`
	ItemSKU  string `json:"item_sku,omitempty"`
}

// JobManualEntry is a free-form labor/paint/other charge. An actual
// cost, once set, overrides the estimate in every total computation.
type JobManualEntry struct {
	ID            int              `json:"id"`
	JobCardID     int              `json:"job_card_id"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	EstimatedCost decimal.Decimal  `json:"estimated_cost"`
	ActualCost    *decimal.Decimal `json:"actual_cost"`
	Notes         string           `json:"notes"`
	CreatedAt     time.Time        `json:"created_at"`
}

// EffectiveCost returns actual cost when set, estimated cost otherwise
func (m *JobManualEntry) EffectiveCost() decimal.Decimal {
	if m.ActualCost != nil {
		return *m.ActualCost
	}
	return m.EstimatedCost
}

// LineTotal computes quantity x unitPrice - discount
func LineTotal(quantity int, unitPrice, discount decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount)
}

// JobTotal computes the full job card total from its current children.
// Called after every line mutation; a full recompute rather than an
// incremental delta, so out-of-band line edits can never drift the
// cached total.
func JobTotal(services []*JobService, parts []*JobPart, entries []*JobManualEntry) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Total)
	}
	for _, p := range parts {
		total = total.Add(p.Total)
	}
	for _, m := range entries {
		total = total.Add(m.EffectiveCost())
	}
	return total
}

// CreateJobCardRequest represents the request body for creating a job card
type CreateJobCardRequest struct {
	CustomerID   int    `json:"customer_id"`
	VehicleID    int    `json:"vehicle_id"`
	Odometer     *int   `json:"odometer"`
	Notes        string `json:"notes"`
	AssignedToID *int   `json:"assigned_to_id"`
}

// UpdateJobCardRequest represents the request body for updating a job card
type UpdateJobCardRequest struct {
	Odometer     *int   `json:"odometer"`
	Notes        string `json:"notes"`
	AssignedToID *int   `json:"assigned_to_id"`
}

// UpdateJobStatusRequest represents the request body for a status change
type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}

// AddJobServiceRequest represents the request body for a service line
type AddJobServiceRequest struct {
	ServiceID int             `json:"service_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Notes     string          `json:"notes"`
}

// AddJobPartRequest represents the request body for a parts line
type AddJobPartRequest struct {
	InventoryItemID int             `json:"inventory_item_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Discount        decimal.Decimal `json:"discount"`
	Notes           string          `json:"notes"`
}

// ManualEntryRequest represents the request body for creating or
// updating a manual entry
type ManualEntryRequest struct {
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	EstimatedCost decimal.Decimal  `json:"estimated_cost"`
	ActualCost    *decimal.Decimal `json:"actual_cost"`
	Notes         string           `json:"notes"`
}

// JobCardFilter narrows job card listings
type JobCardFilter struct {
	Status       string
	Search       string
	CustomerID   int
	AssignedToID int
	FromDate     *time.Time
	ToDate       *time.Time
}

// JobCardStats counts job cards per active status
type JobCardStats struct {
	Pending      int `json:"pending"`
	InProgress   int `json:"in_progress"`
	QualityCheck int `json:"quality_check"`
	Ready        int `json:"ready"`
	Invoiced     int `json:"invoiced"`
}
