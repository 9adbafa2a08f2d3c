package appointments

import (
	"context"
	"time"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Appointment, error)
	ListByRange(ctx context.Context, tenantID int64, from, to time.Time) ([]domain.Appointment, error)
	ListScheduledStarts(ctx context.Context, tenantID int64) ([]time.Time, error)
	Update(ctx context.Context, a *domain.Appointment) error
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, tenantID, id int64) error
}

type RulesReader interface {
	GetAvailabilityRules(ctx context.Context, tenantID int64) (*availability.Rules, error)
}

type ServiceItemReader interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.ServiceItem, error)
}

// Notifier pushes board events to connected staff. Nil-safe at the
// call sites so tests can skip it.
type Notifier interface {
	NotifyAppointmentCreated(tenantID int64, appt *domain.Appointment)
	NotifyAppointmentUpdated(tenantID int64, appt *domain.Appointment)
}
