package booking

import (
	"context"
	"time"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
)

// TenantReader resolves public shops and their availability rules.
type TenantReader interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	GetAvailabilityRules(ctx context.Context, tenantID int64) (*availability.Rules, error)
}

// ServiceItemReader lists the online-bookable catalog.
type ServiceItemReader interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.ServiceItem, error)
	ListBookable(ctx context.Context, tenantID int64) ([]domain.ServiceItem, error)
}

// AppointmentRepository is the appointment surface the public flow
// needs: existing starts for conflict checks and creation of the new
// booking.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	ListScheduledStarts(ctx context.Context, tenantID int64) ([]time.Time, error)
	GetByConfirmationCode(ctx context.Context, tenantID int64, code string) (*domain.Appointment, error)
}

// Notifier pushes real-time events to connected staff. Optional.
type Notifier interface {
	NotifyAppointmentCreated(tenantID int64, a *domain.Appointment)
}
