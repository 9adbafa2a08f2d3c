package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
)

var (
	fixedNow   = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) // Sunday
	bookMonday = "2025-06-09"
)

type mockTenantReader struct {
	mock.Mock
}

func (m *mockTenantReader) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *mockTenantReader) GetAvailabilityRules(ctx context.Context, tenantID int64) (*availability.Rules, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Rules), args.Error(1)
}

type mockServiceItemReader struct {
	mock.Mock
}

func (m *mockServiceItemReader) GetByID(ctx context.Context, tenantID, id int64) (*domain.ServiceItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceItem), args.Error(1)
}

func (m *mockServiceItemReader) ListBookable(ctx context.Context, tenantID int64) ([]domain.ServiceItem, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]domain.ServiceItem), args.Error(1)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	a.ID = 100
	return args.Error(0)
}

func (m *mockAppointmentRepo) ListScheduledStarts(ctx context.Context, tenantID int64) ([]time.Time, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *mockAppointmentRepo) GetByConfirmationCode(ctx context.Context, tenantID int64, code string) (*domain.Appointment, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func testTenant() *domain.Tenant {
	return &domain.Tenant{ID: 1, Name: "Main Street Auto", Slug: "main-street-auto"}
}

func testRules() *availability.Rules {
	return &availability.Rules{
		SchemaVersion: availability.SchemaVersion,
		WeeklySchedule: map[string]*availability.DaySchedule{
			"monday": {IsOpen: true, OpenTime: "08:00", CloseTime: "17:00"},
		},
		SlotDurationMinutes:   30,
		MaxAdvanceBookingDays: 30,
	}
}

func oilChange() *domain.ServiceItem {
	return &domain.ServiceItem{
		ID:               5,
		TenantID:         1,
		Name:             "Oil Change",
		DurationMinutes:  60,
		IsActive:         true,
		IsBookableOnline: true,
	}
}

func newBookingService(tenants *mockTenantReader, items *mockServiceItemReader, appts *mockAppointmentRepo) *Service {
	return NewService(tenants, items, appts, nil).WithClock(func() time.Time { return fixedNow })
}

func TestGetDaySlots(t *testing.T) {
	tenants := new(mockTenantReader)
	items := new(mockServiceItemReader)
	appts := new(mockAppointmentRepo)

	tenants.On("GetBySlug", mock.Anything, "main-street-auto").Return(testTenant(), nil)
	tenants.On("GetAvailabilityRules", mock.Anything, int64(1)).Return(testRules(), nil)
	items.On("GetByID", mock.Anything, int64(1), int64(5)).Return(oilChange(), nil)
	appts.On("ListScheduledStarts", mock.Anything, int64(1)).Return([]time.Time{}, nil)

	slots, err := newBookingService(tenants, items, appts).GetDaySlots(context.Background(), "main-street-auto", bookMonday, 5)
	require.NoError(t, err)
	require.Len(t, slots, 17)
	assert.Equal(t, "08:00", slots[0].StartTime.Format("15:04"))
}

func TestGetDaySlots_Errors(t *testing.T) {
	t.Run("unknown slug", func(t *testing.T) {
		tenants := new(mockTenantReader)
		tenants.On("GetBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		_, err := newBookingService(tenants, new(mockServiceItemReader), new(mockAppointmentRepo)).
			GetDaySlots(context.Background(), "nope", bookMonday, 5)
		assert.ErrorIs(t, err, ErrTenantNotFound)
	})

	t.Run("bad date", func(t *testing.T) {
		tenants := new(mockTenantReader)
		tenants.On("GetBySlug", mock.Anything, "main-street-auto").Return(testTenant(), nil)

		_, err := newBookingService(tenants, new(mockServiceItemReader), new(mockAppointmentRepo)).
			GetDaySlots(context.Background(), "main-street-auto", "June 9th", 5)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("service not bookable online", func(t *testing.T) {
		tenants := new(mockTenantReader)
		items := new(mockServiceItemReader)
		tenants.On("GetBySlug", mock.Anything, "main-street-auto").Return(testTenant(), nil)
		hidden := oilChange()
		hidden.IsBookableOnline = false
		items.On("GetByID", mock.Anything, int64(1), int64(5)).Return(hidden, nil)

		_, err := newBookingService(tenants, items, new(mockAppointmentRepo)).
			GetDaySlots(context.Background(), "main-street-auto", bookMonday, 5)
		assert.ErrorIs(t, err, ErrNotBookable)
	})
}

func TestCreateBooking(t *testing.T) {
	req := CreateBookingRequest{
		ServiceID:     5,
		Date:          bookMonday,
		StartTime:     "09:00",
		CustomerName:  "Pat Driver",
		CustomerPhone: "+1 555 0100",
	}

	t.Run("books an offered slot", func(t *testing.T) {
		tenants := new(mockTenantReader)
		items := new(mockServiceItemReader)
		appts := new(mockAppointmentRepo)

		tenants.On("GetBySlug", mock.Anything, "main-street-auto").Return(testTenant(), nil)
		tenants.On("GetAvailabilityRules", mock.Anything, int64(1)).Return(testRules(), nil)
		items.On("GetByID", mock.Anything, int64(1), int64(5)).Return(oilChange(), nil)
		appts.On("ListScheduledStarts", mock.Anything, int64(1)).Return([]time.Time{}, nil)
		appts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Appointment")).Return(nil)

		conf, err := newBookingService(tenants, items, appts).CreateBooking(context.Background(), "main-street-auto", req)
		require.NoError(t, err)
		assert.NotEmpty(t, conf.ConfirmationCode)
		assert.Equal(t, "Oil Change", conf.ServiceName)

		created := appts.Calls[1].Arguments.Get(1).(*domain.Appointment)
		assert.Equal(t, domain.SourceOnline, created.Source)
		assert.Equal(t, domain.AppointmentScheduled, created.Status)
		assert.Equal(t, "09:00", created.ScheduledAt.Format("15:04"))
	})

	t.Run("rejects a slot blocked by an existing appointment", func(t *testing.T) {
		tenants := new(mockTenantReader)
		items := new(mockServiceItemReader)
		appts := new(mockAppointmentRepo)

		monday := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)
		tenants.On("GetBySlug", mock.Anything, "main-street-auto").Return(testTenant(), nil)
		tenants.On("GetAvailabilityRules", mock.Anything, int64(1)).Return(testRules(), nil)
		items.On("GetByID", mock.Anything, int64(1), int64(5)).Return(oilChange(), nil)
		appts.On("ListScheduledStarts", mock.Anything, int64(1)).Return([]time.Time{monday}, nil)

		_, err := newBookingService(tenants, items, appts).CreateBooking(context.Background(), "main-street-auto", req)
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("rejects a start time the walk never offers", func(t *testing.T) {
		tenants := new(mockTenantReader)
		items := new(mockServiceItemReader)
		appts := new(mockAppointmentRepo)

		tenants.On("GetBySlug", mock.Anything, "main-street-auto").Return(testTenant(), nil)
		tenants.On("GetAvailabilityRules", mock.Anything, int64(1)).Return(testRules(), nil)
		items.On("GetByID", mock.Anything, int64(1), int64(5)).Return(oilChange(), nil)
		appts.On("ListScheduledStarts", mock.Anything, int64(1)).Return([]time.Time{}, nil)

		offGrid := req
		offGrid.StartTime = "09:10"
		_, err := newBookingService(tenants, items, appts).CreateBooking(context.Background(), "main-street-auto", offGrid)
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})
}

func TestLookupBooking(t *testing.T) {
	t.Run("found by code", func(t *testing.T) {
		tenants := new(mockTenantReader)
		appts := new(mockAppointmentRepo)
		tenants.On("GetBySlug", mock.Anything, "main-street-auto").Return(testTenant(), nil)
		appts.On("GetByConfirmationCode", mock.Anything, int64(1), "abc-123").
			Return(&domain.Appointment{ID: 7, ConfirmationCode: "abc-123"}, nil)

		appt, err := newBookingService(tenants, new(mockServiceItemReader), appts).
			LookupBooking(context.Background(), "main-street-auto", "abc-123")
		require.NoError(t, err)
		assert.Equal(t, int64(7), appt.ID)
	})

	t.Run("unknown code is not a missing shop", func(t *testing.T) {
		tenants := new(mockTenantReader)
		appts := new(mockAppointmentRepo)
		tenants.On("GetBySlug", mock.Anything, "main-street-auto").Return(testTenant(), nil)
		appts.On("GetByConfirmationCode", mock.Anything, int64(1), "nope").
			Return(nil, gorm.ErrRecordNotFound)

		_, err := newBookingService(tenants, new(mockServiceItemReader), appts).
			LookupBooking(context.Background(), "main-street-auto", "nope")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetCalendar(t *testing.T) {
	tenants := new(mockTenantReader)
	items := new(mockServiceItemReader)
	appts := new(mockAppointmentRepo)

	tenants.On("GetBySlug", mock.Anything, "main-street-auto").Return(testTenant(), nil)
	tenants.On("GetAvailabilityRules", mock.Anything, int64(1)).Return(testRules(), nil)
	items.On("GetByID", mock.Anything, int64(1), int64(5)).Return(oilChange(), nil)
	appts.On("ListScheduledStarts", mock.Anything, int64(1)).Return([]time.Time{}, nil)

	cal, err := newBookingService(tenants, items, appts).GetCalendar(context.Background(), "main-street-auto", 2025, 6, 5)
	require.NoError(t, err)
	assert.Len(t, cal.Days, 30)

	_, err = newBookingService(tenants, items, appts).GetCalendar(context.Background(), "main-street-auto", 2025, 13, 5)
	require.Error(t, err)
	assert.True(t, isAvailabilityInputError(err))
}
