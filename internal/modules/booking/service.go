package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
)

const dateFormat = "2006-01-02"

// Service implements the public booking flow: landing data, calendar,
// day slots and booking creation, all keyed by the shop's public slug.
type Service struct {
	tenants      TenantReader
	serviceItems ServiceItemReader
	appointments AppointmentRepository
	notifier     Notifier
	now          func() time.Time
}

func NewService(tenants TenantReader, serviceItems ServiceItemReader, appointments AppointmentRepository, notifier Notifier) *Service {
	return &Service{
		tenants:      tenants,
		serviceItems: serviceItems,
		appointments: appointments,
		notifier:     notifier,
		now:          time.Now,
	}
}

// WithClock overrides the clock; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) resolveTenant(ctx context.Context, slug string) (*domain.Tenant, error) {
	tenant, err := s.tenants.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return tenant, nil
}

func (s *Service) GetLanding(ctx context.Context, slug string) (*LandingResponse, error) {
	tenant, err := s.resolveTenant(ctx, slug)
	if err != nil {
		return nil, err
	}

	services, err := s.serviceItems.ListBookable(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	return &LandingResponse{
		Shop: ShopProfile{
			Name:    tenant.Name,
			Slug:    tenant.Slug,
			Phone:   tenant.Phone,
			Email:   tenant.Email,
			Address: tenant.Address,
			City:    tenant.City,
			LogoURL: tenant.LogoURL,
			About:   tenant.About,
		},
		Services: services,
	}, nil
}

func (s *Service) ListServices(ctx context.Context, slug string) ([]domain.ServiceItem, error) {
	tenant, err := s.resolveTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.serviceItems.ListBookable(ctx, tenant.ID)
}

// GetCalendar aggregates the month view. serviceID of zero means no
// slot counts, just open/closed flags.
func (s *Service) GetCalendar(ctx context.Context, slug string, year, month int, serviceID int64) (*availability.CalendarMonth, error) {
	tenant, err := s.resolveTenant(ctx, slug)
	if err != nil {
		return nil, err
	}

	rules, err := s.tenants.GetAvailabilityRules(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	duration := 0
	var starts []time.Time
	if serviceID != 0 {
		svc, err := s.lookupBookableService(ctx, tenant.ID, serviceID)
		if err != nil {
			return nil, err
		}
		duration = svc.DurationMinutes

		starts, err = s.appointments.ListScheduledStarts(ctx, tenant.ID)
		if err != nil {
			return nil, err
		}
	}

	return availability.BuildCalendarMonth(year, month, rules, duration, starts, s.now())
}

// GetDaySlots returns the bookable windows for one date and service.
func (s *Service) GetDaySlots(ctx context.Context, slug, dateStr string, serviceID int64) ([]availability.TimeSlot, error) {
	tenant, err := s.resolveTenant(ctx, slug)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(dateFormat, dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	svc, err := s.lookupBookableService(ctx, tenant.ID, serviceID)
	if err != nil {
		return nil, err
	}

	rules, err := s.tenants.GetAvailabilityRules(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	starts, err := s.appointments.ListScheduledStarts(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	return availability.GenerateTimeSlots(date, svc.DurationMinutes, rules, starts, s.now())
}

// CreateBooking validates the requested window against a fresh slot
// computation and persists the appointment. A unique constraint on
// (tenant, start) backstops the race where two clients pick the same
// slot between the check and the insert.
func (s *Service) CreateBooking(ctx context.Context, slug string, req CreateBookingRequest) (*BookingConfirmation, error) {
	tenant, err := s.resolveTenant(ctx, slug)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	svc, err := s.lookupBookableService(ctx, tenant.ID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	rules, err := s.tenants.GetAvailabilityRules(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	starts, err := s.appointments.ListScheduledStarts(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	slots, err := availability.GenerateTimeSlots(date, svc.DurationMinutes, rules, starts, s.now())
	if err != nil {
		return nil, err
	}

	var scheduledAt time.Time
	found := false
	for _, slot := range slots {
		if slot.StartTime.Format("15:04") == req.StartTime {
			scheduledAt = slot.StartTime
			found = true
			break
		}
	}
	if !found {
		return nil, ErrSlotUnavailable
	}

	appt := &domain.Appointment{
		TenantID:         tenant.ID,
		ServiceItemID:    &svc.ID,
		ScheduledAt:      scheduledAt,
		Status:           domain.AppointmentScheduled,
		Source:           domain.SourceOnline,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerEmail:    req.CustomerEmail,
		ConfirmationCode: uuid.NewString(),
		Notes:            req.Notes,
	}

	if err := s.appointments.Create(ctx, appt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDoubleBooking
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyAppointmentCreated(tenant.ID, appt)
	}

	return &BookingConfirmation{
		ConfirmationCode: appt.ConfirmationCode,
		ServiceName:      svc.Name,
		ScheduledAt:      appt.ScheduledAt.Format(time.RFC3339),
		Status:           string(appt.Status),
	}, nil
}

// LookupBooking lets a customer re-fetch their booking by code.
func (s *Service) LookupBooking(ctx context.Context, slug, code string) (*domain.Appointment, error) {
	tenant, err := s.resolveTenant(ctx, slug)
	if err != nil {
		return nil, err
	}

	appt, err := s.appointments.GetByConfirmationCode(ctx, tenant.ID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return appt, nil
}

func (s *Service) lookupBookableService(ctx context.Context, tenantID, serviceID int64) (*domain.ServiceItem, error) {
	svc, err := s.serviceItems.GetByID(ctx, tenantID, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.IsActive || !svc.IsBookableOnline {
		return nil, ErrNotBookable
	}
	return svc, nil
}
