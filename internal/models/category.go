package models

import "time"

// Category groups inventory items
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	ItemCount int `json:"item_count,omitempty"`
}

// ServiceCategory groups services
type ServiceCategory struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	ServiceCount int `json:"service_count,omitempty"`
}

// CategoryRequest is the request body for creating or updating either
// category kind
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
