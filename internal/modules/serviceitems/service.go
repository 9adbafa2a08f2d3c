package serviceitems

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
)

var ErrServiceNotFound = errors.New("service item not found")
var ErrInvalidDuration = errors.New("invalid service duration")

type ServiceItemRepository interface {
	Create(ctx context.Context, s *domain.ServiceItem) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.ServiceItem, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]domain.ServiceItem, error)
	Update(ctx context.Context, s *domain.ServiceItem) error
	Delete(ctx context.Context, tenantID, id int64) error
}

type CreateServiceRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	DurationMinutes  int     `json:"duration_minutes" binding:"required,gt=0"`
	BasePrice        float64 `json:"base_price" binding:"gte=0"`
	IsActive         *bool   `json:"is_active"`
	IsBookableOnline *bool   `json:"is_bookable_online"`
}

type UpdateServiceRequest struct {
	Name             *string  `json:"name"`
	Description      *string  `json:"description"`
	Category         *string  `json:"category"`
	DurationMinutes  *int     `json:"duration_minutes"`
	BasePrice        *float64 `json:"base_price"`
	IsActive         *bool    `json:"is_active"`
	IsBookableOnline *bool    `json:"is_bookable_online"`
}

type Service struct {
	items ServiceItemRepository
}

func NewService(items ServiceItemRepository) *Service {
	return &Service{items: items}
}

func checkDuration(minutes int) error {
	if minutes < availability.MinSlotDurationMinutes || minutes > availability.MaxSlotDurationMinutes {
		return ErrInvalidDuration
	}
	return nil
}

func (s *Service) Create(ctx context.Context, tenantID int64, req CreateServiceRequest) (*domain.ServiceItem, error) {
	if err := checkDuration(req.DurationMinutes); err != nil {
		return nil, err
	}

	item := &domain.ServiceItem{
		TenantID:         tenantID,
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		DurationMinutes:  req.DurationMinutes,
		BasePrice:        req.BasePrice,
		IsActive:         true,
		IsBookableOnline: true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.IsBookableOnline != nil {
		item.IsBookableOnline = *req.IsBookableOnline
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (*domain.ServiceItem, error) {
	item, err := s.items.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, tenantID int64) ([]domain.ServiceItem, error) {
	return s.items.ListByTenant(ctx, tenantID)
}

func (s *Service) Update(ctx context.Context, tenantID, id int64, req UpdateServiceRequest) (*domain.ServiceItem, error) {
	item, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.DurationMinutes != nil {
		if err := checkDuration(*req.DurationMinutes); err != nil {
			return nil, err
		}
		item.DurationMinutes = *req.DurationMinutes
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.BasePrice != nil {
		item.BasePrice = *req.BasePrice
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.IsBookableOnline != nil {
		item.IsBookableOnline = *req.IsBookableOnline
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := s.Get(ctx, tenantID, id); err != nil {
		return err
	}
	return s.items.Delete(ctx, tenantID, id)
}
