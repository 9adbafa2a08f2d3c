package appointments

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
)

const dateFormat = "2006-01-02"

var validStatuses = map[domain.AppointmentStatus]bool{
	domain.AppointmentScheduled:  true,
	domain.AppointmentConfirmed:  true,
	domain.AppointmentInProgress: true,
	domain.AppointmentCompleted:  true,
	domain.AppointmentCancelled:  true,
	domain.AppointmentNoShow:     true,
}

type Service struct {
	appointments AppointmentRepository
	rules        RulesReader
	serviceItems ServiceItemReader
	notifier     Notifier
	now          func() time.Time
}

func NewService(appointments AppointmentRepository, rules RulesReader, serviceItems ServiceItemReader, notifier Notifier) *Service {
	return &Service{
		appointments: appointments,
		rules:        rules,
		serviceItems: serviceItems,
		notifier:     notifier,
		now:          time.Now,
	}
}

// WithClock fixes the notion of "now". Tests use it.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create books an appointment on behalf of staff. Staff bypass the
// public slot computation; the unique (tenant, start) constraint is
// the only hard gate against two appointments on the same instant.
func (s *Service) Create(ctx context.Context, tenantID int64, req CreateAppointmentRequest) (*domain.Appointment, error) {
	if req.ServiceItemID != nil {
		if _, err := s.serviceItems.GetByID(ctx, tenantID, *req.ServiceItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, err
		}
	}

	appt := &domain.Appointment{
		TenantID:      tenantID,
		CustomerID:    req.CustomerID,
		VehicleID:     req.VehicleID,
		ServiceItemID: req.ServiceItemID,
		ScheduledAt:   req.ScheduledAt.UTC(),
		Status:        domain.AppointmentScheduled,
		Source:        domain.SourceStaff,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	}

	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, mapConflict(err)
	}

	if s.notifier != nil {
		s.notifier.NotifyAppointmentCreated(tenantID, appt)
	}
	return appt, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appt, nil
}

// ListDay returns the appointments starting on one calendar date.
func (s *Service) ListDay(ctx context.Context, tenantID int64, dateStr string) ([]domain.Appointment, error) {
	day, err := time.Parse(dateFormat, dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return s.appointments.ListByRange(ctx, tenantID, day, day.AddDate(0, 0, 1))
}

// ListRange returns appointments with from <= start < to.
func (s *Service) ListRange(ctx context.Context, tenantID int64, fromStr, toStr string) ([]domain.Appointment, error) {
	from, err := time.Parse(dateFormat, fromStr)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := time.Parse(dateFormat, toStr)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return s.appointments.ListByRange(ctx, tenantID, from, to)
}

// AdminCalendar runs the same month aggregation the public site uses,
// so staff see exactly what customers see.
func (s *Service) AdminCalendar(ctx context.Context, tenantID int64, year, month int, serviceID int64) (*availability.CalendarMonth, error) {
	rules, err := s.rules.GetAvailabilityRules(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	duration := 0
	if serviceID != 0 {
		svc, err := s.serviceItems.GetByID(ctx, tenantID, serviceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, err
		}
		duration = svc.DurationMinutes
	}

	starts, err := s.appointments.ListScheduledStarts(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return availability.BuildCalendarMonth(year, month, rules, duration, starts, s.now())
}

func (s *Service) Reschedule(ctx context.Context, tenantID, id int64, req RescheduleRequest) (*domain.Appointment, error) {
	appt, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	appt.ScheduledAt = req.ScheduledAt.UTC()
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, mapConflict(err)
	}

	if s.notifier != nil {
		s.notifier.NotifyAppointmentUpdated(tenantID, appt)
	}
	return appt, nil
}

func (s *Service) UpdateStatus(ctx context.Context, tenantID, id int64, status string) (*domain.Appointment, error) {
	next := domain.AppointmentStatus(status)
	if !validStatuses[next] {
		return nil, ErrInvalidStatus
	}

	appt, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.appointments.UpdateStatus(ctx, tenantID, id, next); err != nil {
		return nil, err
	}
	appt.Status = next

	if s.notifier != nil {
		s.notifier.NotifyAppointmentUpdated(tenantID, appt)
	}
	return appt, nil
}

func (s *Service) Cancel(ctx context.Context, tenantID, id int64) error {
	appt, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !appt.CanBeCancelled() {
		return ErrNotCancellable
	}

	if err := s.appointments.Cancel(ctx, tenantID, id); err != nil {
		return err
	}

	if s.notifier != nil {
		appt.Status = domain.AppointmentCancelled
		s.notifier.NotifyAppointmentUpdated(tenantID, appt)
	}
	return nil
}

func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDoubleBooking
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDoubleBooking
	}
	return err
}
