package models

import "time"

type Vehicle struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"`
	VehicleNo  string    `json:"vehicle_no"` // registration number, unique within the shop
	Make       string    `json:"make"`
	Model      string    `json:"model"`
	Color      string    `json:"color"`
	Year       *int      `json:"year"`
	VIN        string    `json:"vin"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
}

// VehicleDetail includes the owner and recent job history
type VehicleDetail struct {
	Vehicle
	Customer       *Customer  `json:"customer"`
	RecentJobCards []*JobCard `json:"recent_job_cards"`
}

// CreateVehicleRequest represents the request body for creating a vehicle
type CreateVehicleRequest struct {
	CustomerID int    `json:"customer_id"`
	VehicleNo  string `json:"vehicle_no"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Color      string `json:"color"`
	Year       *int   `json:"year"`
	VIN        string `json:"vin"`
	Notes      string `json:"notes"`
}

// UpdateVehicleRequest represents the request body for updating a vehicle
type UpdateVehicleRequest struct {
	VehicleNo string `json:"vehicle_no"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Color     string `json:"color"`
	Year      *int   `json:"year"`
	VIN       string `json:"vin"`
	Notes     string `json:"notes"`
}
