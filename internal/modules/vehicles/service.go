package vehicles

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type CreateVehicleRequest struct {
	CustomerID   int64  `json:"customer_id" binding:"required"`
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate"`
	VIN          string `json:"vin"`
	Color        string `json:"color"`
	Mileage      int    `json:"mileage"`
}

type UpdateVehicleRequest struct {
	Make         *string `json:"make"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
	LicensePlate *string `json:"license_plate"`
	VIN          *string `json:"vin"`
	Color        *string `json:"color"`
	Mileage      *int    `json:"mileage"`
}

type Service struct {
	vehicles  VehicleRepository
	customers CustomerReader
}

func NewService(vehicles VehicleRepository, customers CustomerReader) *Service {
	return &Service{vehicles: vehicles, customers: customers}
}

func (s *Service) Create(ctx context.Context, tenantID int64, req CreateVehicleRequest) (*domain.Vehicle, error) {
	// The owning customer must exist in the same tenant.
	if _, err := s.customers.GetByID(ctx, tenantID, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	v := &domain.Vehicle{
		TenantID:     tenantID,
		CustomerID:   req.CustomerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		VIN:          req.VIN,
		Color:        req.Color,
		Mileage:      req.Mileage,
	}
	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (*domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Vehicle, error) {
	return s.vehicles.ListByTenant(ctx, tenantID, limit, offset)
}

func (s *Service) ListByCustomer(ctx context.Context, tenantID, customerID int64) ([]domain.Vehicle, error) {
	if _, err := s.customers.GetByID(ctx, tenantID, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.vehicles.ListByCustomer(ctx, tenantID, customerID)
}

func (s *Service) Update(ctx context.Context, tenantID, id int64, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	v, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Make != nil {
		v.Make = *req.Make
	}
	if req.Model != nil {
		v.Model = *req.Model
	}
	if req.Year != nil {
		v.Year = *req.Year
	}
	if req.LicensePlate != nil {
		v.LicensePlate = *req.LicensePlate
	}
	if req.VIN != nil {
		v.VIN = *req.VIN
	}
	if req.Color != nil {
		v.Color = *req.Color
	}
	if req.Mileage != nil {
		v.Mileage = *req.Mileage
	}

	if err := s.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := s.Get(ctx, tenantID, id); err != nil {
		return err
	}
	return s.vehicles.Delete(ctx, tenantID, id)
}
