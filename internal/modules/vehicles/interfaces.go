package vehicles

import (
	"context"

	"autoshop/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Vehicle, error)
	ListByTenant(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Vehicle, error)
	ListByCustomer(ctx context.Context, tenantID, customerID int64) ([]domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, tenantID, id int64) error
}

type CustomerReader interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Customer, error)
}
