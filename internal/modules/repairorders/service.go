package repairorders

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"autoshop/internal/domain"
	"autoshop/internal/repository"
)

type AppointmentReader interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Appointment, error)
}

type CustomerReader interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Customer, error)
}

type RepairOrderRepository interface {
	NextNumber(ctx context.Context, tenantID int64) (string, error)
	Create(ctx context.Context, o *domain.RepairOrder) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.RepairOrder, error)
	List(ctx context.Context, tenantID int64, f repository.RepairOrderFilters) ([]domain.RepairOrder, int64, error)
	Update(ctx context.Context, o *domain.RepairOrder) error
	Close(ctx context.Context, tenantID, id int64) error
}

type CreateOrderRequest struct {
	AppointmentID *int64 `json:"appointment_id"`
	CustomerID    int64  `json:"customer_id"`
	VehicleID     *int64 `json:"vehicle_id"`
	MechanicID    *int64 `json:"mechanic_id"`
	Complaint     string `json:"complaint"`
}

type UpdateLinesRequest struct {
	Diagnosis *string                  `json:"diagnosis"`
	Lines     []domain.RepairOrderLine `json:"lines" binding:"required"`
}

type Service struct {
	orders       RepairOrderRepository
	appointments AppointmentReader
	customers    CustomerReader
	now          func() time.Time
}

func NewService(orders RepairOrderRepository, appointments AppointmentReader, customers CustomerReader) *Service {
	return &Service{
		orders:       orders,
		appointments: appointments,
		customers:    customers,
		now:          time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create opens a repair order, either standalone or hung off an
// appointment. When an appointment is given, customer and vehicle
// default from it unless the request overrides them.
func (s *Service) Create(ctx context.Context, tenantID int64, req CreateOrderRequest) (*domain.RepairOrder, error) {
	customerID := req.CustomerID
	vehicleID := req.VehicleID

	if req.AppointmentID != nil {
		appt, err := s.appointments.GetByID(ctx, tenantID, *req.AppointmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAppointmentNotFound
			}
			return nil, err
		}
		if customerID == 0 && appt.CustomerID != nil {
			customerID = *appt.CustomerID
		}
		if vehicleID == nil {
			vehicleID = appt.VehicleID
		}
	}

	if _, err := s.customers.GetByID(ctx, tenantID, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	number, err := s.orders.NextNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	order := &domain.RepairOrder{
		TenantID:      tenantID,
		Number:        number,
		AppointmentID: req.AppointmentID,
		CustomerID:    customerID,
		VehicleID:     vehicleID,
		MechanicID:    req.MechanicID,
		Status:        domain.RepairOrderOpen,
		Complaint:     req.Complaint,
		LinesJSON:     []byte("[]"),
		OpenedAt:      s.now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (*domain.RepairOrder, error) {
	order, err := s.orders.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, tenantID int64, f repository.RepairOrderFilters) ([]domain.RepairOrder, int64, error) {
	return s.orders.List(ctx, tenantID, f)
}

func (s *Service) UpdateStatus(ctx context.Context, tenantID, id int64, status string) (*domain.RepairOrder, error) {
	next := domain.RepairOrderStatus(status)
	switch next {
	case domain.RepairOrderOpen, domain.RepairOrderInProgress,
		domain.RepairOrderAwaitingParts, domain.RepairOrderReady, domain.RepairOrderClosed:
	default:
		return nil, ErrInvalidStatus
	}

	order, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !order.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	if next == domain.RepairOrderClosed {
		if err := s.orders.Close(ctx, tenantID, id); err != nil {
			return nil, err
		}
		now := s.now()
		order.ClosedAt = &now
	} else {
		order.Status = next
		if err := s.orders.Update(ctx, order); err != nil {
			return nil, err
		}
	}
	order.Status = next
	return order, nil
}

// UpdateLines replaces the order's line items and recomputes totals.
func (s *Service) UpdateLines(ctx context.Context, tenantID, id int64, req UpdateLinesRequest) (*domain.RepairOrder, error) {
	order, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.RepairOrderClosed {
		return nil, ErrOrderClosed
	}

	var labor, parts float64
	for _, line := range req.Lines {
		if line.Description == "" || line.Quantity <= 0 || line.UnitPrice < 0 {
			return nil, ErrInvalidLine
		}
		amount := line.Quantity * line.UnitPrice
		switch line.Type {
		case "labor":
			labor += amount
		case "part":
			parts += amount
		default:
			return nil, ErrInvalidLine
		}
	}

	raw, err := json.Marshal(req.Lines)
	if err != nil {
		return nil, err
	}

	order.LinesJSON = raw
	order.LaborTotal = labor
	order.PartsTotal = parts
	order.Total = labor + parts
	if req.Diagnosis != nil {
		order.Diagnosis = *req.Diagnosis
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Lines decodes the stored line items for responses.
func (s *Service) Lines(order *domain.RepairOrder) []domain.RepairOrderLine {
	if len(order.LinesJSON) == 0 {
		return nil
	}
	var lines []domain.RepairOrderLine
	if err := json.Unmarshal(order.LinesJSON, &lines); err != nil {
		return nil
	}
	return lines
}
