package repository

import (
	"context"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type ServiceItemRepository struct {
	db *gorm.DB
}

func NewServiceItemRepository(db *gorm.DB) *ServiceItemRepository {
	return &ServiceItemRepository{db: db}
}

func (r *ServiceItemRepository) Create(ctx context.Context, s *domain.ServiceItem) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceItemRepository) CreateBatch(ctx context.Context, items []domain.ServiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *ServiceItemRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.ServiceItem, error) {
	var s domain.ServiceItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceItemRepository) ListByTenant(ctx context.Context, tenantID int64) ([]domain.ServiceItem, error) {
	var items []domain.ServiceItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("category, name").
		Find(&items).Error
	return items, err
}

// ListBookable returns only the items the public booking flow may
// offer: active and flagged for online booking.
func (r *ServiceItemRepository) ListBookable(ctx context.Context, tenantID int64) ([]domain.ServiceItem, error) {
	var items []domain.ServiceItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ? AND is_bookable_online = ?", tenantID, true, true).
		Order("category, name").
		Find(&items).Error
	return items, err
}

func (r *ServiceItemRepository) Update(ctx context.Context, s *domain.ServiceItem) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ServiceItemRepository) Delete(ctx context.Context, tenantID, id int64) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&domain.ServiceItem{}, id).Error
}
