package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type RepairOrderFilters struct {
	Status     string
	MechanicID *int64
	Limit      int
	Offset     int
}

type RepairOrderRepository struct {
	db *gorm.DB
}

func NewRepairOrderRepository(db *gorm.DB) *RepairOrderRepository {
	return &RepairOrderRepository{db: db}
}

// NextNumber issues a per-tenant sequential order number like
// "RO-000042". Fine for a single writer per tenant; concurrent opens
// for the same tenant are rare enough that a retry on the unique
// constraint suffices.
func (r *RepairOrderRepository) NextNumber(ctx context.Context, tenantID int64) (string, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.RepairOrder{}).
		Where("tenant_id = ?", tenantID).
		Count(&cnt).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RO-%06d", cnt+1), nil
}

func (r *RepairOrderRepository) Create(ctx context.Context, o *domain.RepairOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *RepairOrderRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.RepairOrder, error) {
	var o domain.RepairOrder
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("Customer").
		Preload("Vehicle").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *RepairOrderRepository) List(ctx context.Context, tenantID int64, f RepairOrderFilters) ([]domain.RepairOrder, int64, error) {
	var orders []domain.RepairOrder
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.RepairOrder{}).
		Where("tenant_id = ?", tenantID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MechanicID != nil {
		q = q.Where("mechanic_id = ?", *f.MechanicID)
	}

	q.Count(&total)

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	err := q.Order("opened_at DESC").Find(&orders).Error
	return orders, total, err
}

func (r *RepairOrderRepository) Update(ctx context.Context, o *domain.RepairOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *RepairOrderRepository) Close(ctx context.Context, tenantID, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.RepairOrder{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]any{
			"status":    string(domain.RepairOrderClosed),
			"closed_at": &now,
		}).Error
}
