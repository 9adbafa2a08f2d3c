package customers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoshop/internal/domain"
	pkgvalidator "autoshop/internal/pkg/validator"
	"autoshop/internal/repository"
)

type Service struct {
	customers CustomerRepository
}

func NewService(customers CustomerRepository) *Service {
	return &Service{customers: customers}
}

func (s *Service) Create(ctx context.Context, tenantID int64, req CreateCustomerRequest) (*domain.Customer, error) {
	c := &domain.Customer{
		TenantID: tenantID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Notes:    req.Notes,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, tenantID int64, f repository.CustomerFilters) ([]domain.Customer, int64, error) {
	return s.customers.List(ctx, tenantID, f)
}

func (s *Service) Update(ctx context.Context, tenantID, id int64, req UpdateCustomerRequest) (*domain.Customer, error) {
	c, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}

	// Partial updates can blank required fields; re-check the entity.
	if fields := pkgvalidator.Validate(c); fields != nil {
		return nil, ErrInvalidCustomer
	}

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete soft-deletes so history on past appointments and orders
// stays intact.
func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := s.Get(ctx, tenantID, id); err != nil {
		return err
	}
	return s.customers.SoftDelete(ctx, tenantID, id)
}
