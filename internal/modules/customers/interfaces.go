package customers

import (
	"context"

	"autoshop/internal/domain"
	"autoshop/internal/repository"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Customer, error)
	List(ctx context.Context, tenantID int64, f repository.CustomerFilters) ([]domain.Customer, int64, error)
	Update(ctx context.Context, c *domain.Customer) error
	SoftDelete(ctx context.Context, tenantID, id int64) error
}
