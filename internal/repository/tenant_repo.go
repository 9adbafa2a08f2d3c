package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
)

type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) Create(ctx context.Context, t *domain.Tenant) error {
	t.Slug = strings.ToLower(strings.TrimSpace(t.Slug))
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Tenant{}).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *TenantRepository) Update(ctx context.Context, t *domain.Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// GetAvailabilityRules parses the stored rules blob exactly once, at
// this boundary; everything downstream works with the typed value.
func (r *TenantRepository) GetAvailabilityRules(ctx context.Context, tenantID int64) (*availability.Rules, error) {
	var t domain.Tenant
	if err := r.db.WithContext(ctx).Select("id", "availability_rules_json").First(&t, tenantID).Error; err != nil {
		return nil, err
	}
	return availability.ParseRules(t.AvailabilityRulesJSON)
}

// SaveAvailabilityRules serializes and stores validated rules.
func (r *TenantRepository) SaveAvailabilityRules(ctx context.Context, tenantID int64, rules *availability.Rules) error {
	raw, err := rules.Marshal()
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&domain.Tenant{}).
		Where("id = ?", tenantID).
		Update("availability_rules_json", raw).Error
}
