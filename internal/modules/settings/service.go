package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
)

var ErrTenantNotFound = errors.New("tenant not found")

type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) error
	GetAvailabilityRules(ctx context.Context, tenantID int64) (*availability.Rules, error)
	SaveAvailabilityRules(ctx context.Context, tenantID int64, rules *availability.Rules) error
}

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	LogoURL *string `json:"logo_url"`
	About   *string `json:"about"`
}

type Service struct {
	tenants TenantRepository
}

func NewService(tenants TenantRepository) *Service {
	return &Service{tenants: tenants}
}

func (s *Service) GetProfile(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	t, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateProfile(ctx context.Context, tenantID int64, req UpdateProfileRequest) (*domain.Tenant, error) {
	t, err := s.GetProfile(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Phone != nil {
		t.Phone = *req.Phone
	}
	if req.Email != nil {
		t.Email = *req.Email
	}
	if req.Address != nil {
		t.Address = *req.Address
	}
	if req.City != nil {
		t.City = *req.City
	}
	if req.LogoURL != nil {
		t.LogoURL = *req.LogoURL
	}
	if req.About != nil {
		t.About = *req.About
	}

	if err := s.tenants.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) GetAvailability(ctx context.Context, tenantID int64) (*availability.Rules, error) {
	rules, err := s.tenants.GetAvailabilityRules(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return rules, nil
}

// UpdateAvailability replaces the whole rules document. The update is
// all-or-nothing: the first validation failure rejects it and nothing
// is written.
func (s *Service) UpdateAvailability(ctx context.Context, tenantID int64, rules *availability.Rules) (*availability.Rules, error) {
	if rules.SchemaVersion == 0 {
		rules.SchemaVersion = availability.SchemaVersion
	}
	if err := availability.ValidateRules(rules); err != nil {
		return nil, err
	}

	if err := s.tenants.SaveAvailabilityRules(ctx, tenantID, rules); err != nil {
		return nil, err
	}
	return rules, nil
}
