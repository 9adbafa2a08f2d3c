package onboarding

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
)

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrNoServices     = errors.New("at least one service is required to finish onboarding")
)

type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) error
	GetAvailabilityRules(ctx context.Context, tenantID int64) (*availability.Rules, error)
	SaveAvailabilityRules(ctx context.Context, tenantID int64, rules *availability.Rules) error
}

type ServiceItemRepository interface {
	CreateBatch(ctx context.Context, items []domain.ServiceItem) error
	ListByTenant(ctx context.Context, tenantID int64) ([]domain.ServiceItem, error)
}

type ProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	City    string `json:"city"`
	About   string `json:"about"`
}

type ServiceInput struct {
	Name            string  `json:"name" binding:"required"`
	Category        string  `json:"category"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	BasePrice       float64 `json:"base_price" binding:"gte=0"`
}

type AddServicesRequest struct {
	Services []ServiceInput `json:"services" binding:"required,min=1,dive"`
}

type StatusResponse struct {
	Status      domain.OnboardingStatus `json:"status"`
	HasProfile  bool                    `json:"has_profile"`
	HasServices bool                    `json:"has_services"`
}

type Service struct {
	tenants TenantRepository
	items   ServiceItemRepository
}

func NewService(tenants TenantRepository, items ServiceItemRepository) *Service {
	return &Service{tenants: tenants, items: items}
}

func (s *Service) getTenant(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	t, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) Status(ctx context.Context, tenantID int64) (*StatusResponse, error) {
	t, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &StatusResponse{
		Status:      t.Status,
		HasProfile:  t.Phone != "" || t.Address != "",
		HasServices: len(items) > 0,
	}, nil
}

func (s *Service) SaveProfile(ctx context.Context, tenantID int64, req ProfileRequest) (*domain.Tenant, error) {
	t, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	t.Name = req.Name
	t.Phone = req.Phone
	t.Email = req.Email
	t.Address = req.Address
	t.City = req.City
	t.About = req.About

	if err := s.tenants.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// SaveHours stores the opening-hours step as a full rules document,
// validated the same way the settings screen validates it.
func (s *Service) SaveHours(ctx context.Context, tenantID int64, rules *availability.Rules) (*availability.Rules, error) {
	if _, err := s.getTenant(ctx, tenantID); err != nil {
		return nil, err
	}

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

func (s *Service) AddServices(ctx context.Context, tenantID int64, req AddServicesRequest) ([]domain.ServiceItem, error) {
	if _, err := s.getTenant(ctx, tenantID); err != nil {
		return nil, err
	}

	items := make([]domain.ServiceItem, 0, len(req.Services))
	for _, in := range req.Services {
		items = append(items, domain.ServiceItem{
			TenantID:         tenantID,
			Name:             in.Name,
			Category:         in.Category,
			DurationMinutes:  in.DurationMinutes,
			BasePrice:        in.BasePrice,
			IsActive:         true,
			IsBookableOnline: true,
		})
	}

	if err := s.items.CreateBatch(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Complete flips the tenant live. The public booking pages work either
// way; this only gates the setup checklist in the dashboard.
func (s *Service) Complete(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	t, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoServices
	}

	t.Status = domain.OnboardingCompleted
	if err := s.tenants.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
