package domain

import "time"

type OnboardingStatus string

const (
	OnboardingPending   OnboardingStatus = "pending"
	OnboardingCompleted OnboardingStatus = "completed"
)

// Tenant is one repair shop. Everything it owns hangs off TenantID
// and never leaks across shops.
type Tenant struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name" validate:"required"`
	Slug    string           `json:"slug" gorm:"uniqueIndex"`
	Phone   string           `json:"phone,omitempty"`
	Email   string           `json:"email,omitempty"`
	Address string           `json:"address,omitempty"`
	City    string           `json:"city,omitempty"`
	LogoURL string           `json:"logo_url,omitempty"`
	About   string           `json:"about,omitempty" gorm:"type:text"`
	Status  OnboardingStatus `json:"status"`

	// Availability rules are stored as a single JSON document and
	// parsed at the repository boundary.
	AvailabilityRulesJSON []byte `json:"-" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
