package repository

import (
	"context"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type CustomerFilters struct {
	Search string
	Limit  int
	Offset int
}

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND deleted_at IS NULL", tenantID).
		Preload("Vehicles").
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context, tenantID int64, f CustomerFilters) ([]domain.Customer, int64, error) {
	var customers []domain.Customer
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("tenant_id = ? AND deleted_at IS NULL", tenantID)

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like)
	}

	q.Count(&total)

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	err := q.Order("name").Find(&customers).Error
	return customers, total, err
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CustomerRepository) SoftDelete(ctx context.Context, tenantID, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("deleted_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
