package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID           int             `json:"id"`
	CategoryID   *int            `json:"category_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Duration     *int            `json:"duration"` // minutes
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	CategoryName string `json:"category_name,omitempty"`
}

// ServiceRequest is the request body for creating or updating a service
type ServiceRequest struct {
	CategoryID  *int            `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Duration    *int            `json:"duration"`
	IsActive    *bool           `json:"is_active"`
}
