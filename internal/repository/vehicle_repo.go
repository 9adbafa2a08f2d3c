package repository

import (
	"context"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) ListByTenant(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return vehicles, q.Find(&vehicles).Error
}

func (r *VehicleRepository) ListByCustomer(ctx context.Context, tenantID, customerID int64) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("id").
		Find(&vehicles).Error
	return vehicles, err
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, tenantID, id int64) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&domain.Vehicle{}, id).Error
}
