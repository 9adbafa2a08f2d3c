package auth

import (
	"context"

	"autoshop/internal/domain"
)

// TenantRepository is the tenant persistence surface auth needs.
type TenantRepository interface {
	Create(ctx context.Context, t *domain.Tenant) error
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// UserRepository is the staff-user persistence surface auth needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
