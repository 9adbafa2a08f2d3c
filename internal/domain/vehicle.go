package domain

import "time"

type Vehicle struct {
	ID           int64     `json:"id"`
	TenantID     int64     `json:"tenant_id"`
	CustomerID   int64     `json:"customer_id" validate:"required"`
	Make         string    `json:"make" validate:"required"`
	Model        string    `json:"model" validate:"required"`
	Year         int       `json:"year,omitempty"`
	LicensePlate string    `json:"license_plate,omitempty"`
	VIN          string    `json:"vin,omitempty"`
	Color        string    `json:"color,omitempty"`
	Mileage      int       `json:"mileage,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
