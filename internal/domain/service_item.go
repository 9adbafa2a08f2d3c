package domain

import "time"

type ServiceItem struct {
	ID               int64     `json:"id"`
	TenantID         int64     `json:"tenant_id"`
	Name             string    `json:"name" validate:"required"`
	Description      string    `json:"description,omitempty" gorm:"type:text"`
	Category         string    `json:"category,omitempty"`
	DurationMinutes  int       `json:"duration_minutes" validate:"required,gt=0"`
	BasePrice        float64   `json:"base_price" validate:"gte=0"`
	IsActive         bool      `json:"is_active"`
	IsBookableOnline bool      `json:"is_bookable_online"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
