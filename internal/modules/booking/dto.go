package booking

import "autoshop/internal/domain"

type LandingResponse struct {
	Shop     ShopProfile          `json:"shop"`
	Services []domain.ServiceItem `json:"services"`
}

type ShopProfile struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
	About   string `json:"about,omitempty"`
}

type CreateBookingRequest struct {
	ServiceID     int64  `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`       // yyyy-MM-dd
	StartTime     string `json:"start_time" binding:"required"` // HH:mm
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	Notes         string `json:"notes"`
}

type BookingConfirmation struct {
	ConfirmationCode string `json:"confirmation_code"`
	ServiceName      string `json:"service_name"`
	ScheduledAt      string `json:"scheduled_at"`
	Status           string `json:"status"`
}
