package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type mockApptRepo struct {
	mock.Mock
}

func (m *mockApptRepo) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	a.ID = 200
	return args.Error(0)
}

func (m *mockApptRepo) GetByID(ctx context.Context, tenantID, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockApptRepo) ListByRange(ctx context.Context, tenantID int64, from, to time.Time) ([]domain.Appointment, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *mockApptRepo) ListScheduledStarts(ctx context.Context, tenantID int64) ([]time.Time, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *mockApptRepo) Update(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockApptRepo) UpdateStatus(ctx context.Context, tenantID, id int64, status domain.AppointmentStatus) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

func (m *mockApptRepo) Cancel(ctx context.Context, tenantID, id int64) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type mockRulesReader struct {
	mock.Mock
}

func (m *mockRulesReader) GetAvailabilityRules(ctx context.Context, tenantID int64) (*availability.Rules, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Rules), args.Error(1)
}

type mockItemReader struct {
	mock.Mock
}

func (m *mockItemReader) GetByID(ctx context.Context, tenantID, id int64) (*domain.ServiceItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceItem), args.Error(1)
}

func newStaffService(appts *mockApptRepo, rules *mockRulesReader, items *mockItemReader) *Service {
	return NewService(appts, rules, items, nil).WithClock(func() time.Time { return testNow })
}

func TestStaffCreate(t *testing.T) {
	start := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	t.Run("creates with staff source", func(t *testing.T) {
		appts := new(mockApptRepo)
		appts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Appointment")).Return(nil)

		appt, err := newStaffService(appts, new(mockRulesReader), new(mockItemReader)).
			Create(context.Background(), 1, CreateAppointmentRequest{
				ScheduledAt:  start,
				CustomerName: "Walk In",
			})
		require.NoError(t, err)
		assert.Equal(t, domain.SourceStaff, appt.Source)
		assert.Equal(t, domain.AppointmentScheduled, appt.Status)
		assert.Equal(t, start, appt.ScheduledAt)
	})

	t.Run("maps unique violation to a conflict", func(t *testing.T) {
		appts := new(mockApptRepo)
		appts.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

		_, err := newStaffService(appts, new(mockRulesReader), new(mockItemReader)).
			Create(context.Background(), 1, CreateAppointmentRequest{ScheduledAt: start})
		assert.ErrorIs(t, err, ErrDoubleBooking)
	})

	t.Run("unknown service is rejected", func(t *testing.T) {
		items := new(mockItemReader)
		items.On("GetByID", mock.Anything, int64(1), int64(99)).Return(nil, gorm.ErrRecordNotFound)

		svcID := int64(99)
		_, err := newStaffService(new(mockApptRepo), new(mockRulesReader), items).
			Create(context.Background(), 1, CreateAppointmentRequest{
				ServiceItemID: &svcID,
				ScheduledAt:   start,
			})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestListDay(t *testing.T) {
	appts := new(mockApptRepo)
	day := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	appts.On("ListByRange", mock.Anything, int64(1), day, day.AddDate(0, 0, 1)).
		Return([]domain.Appointment{{ID: 1}, {ID: 2}}, nil)

	list, err := newStaffService(appts, new(mockRulesReader), new(mockItemReader)).
		ListDay(context.Background(), 1, "2025-06-09")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = newStaffService(appts, new(mockRulesReader), new(mockItemReader)).
		ListDay(context.Background(), 1, "June 9")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpdateStatusValidation(t *testing.T) {
	appts := new(mockApptRepo)
	appts.On("GetByID", mock.Anything, int64(1), int64(5)).
		Return(&domain.Appointment{ID: 5, TenantID: 1, Status: domain.AppointmentScheduled}, nil)
	appts.On("UpdateStatus", mock.Anything, int64(1), int64(5), domain.AppointmentConfirmed).Return(nil)

	svc := newStaffService(appts, new(mockRulesReader), new(mockItemReader))

	appt, err := svc.UpdateStatus(context.Background(), 1, 5, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentConfirmed, appt.Status)

	_, err = svc.UpdateStatus(context.Background(), 1, 5, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel(t *testing.T) {
	t.Run("cancellable appointment", func(t *testing.T) {
		appts := new(mockApptRepo)
		appts.On("GetByID", mock.Anything, int64(1), int64(5)).
			Return(&domain.Appointment{ID: 5, TenantID: 1, Status: domain.AppointmentConfirmed}, nil)
		appts.On("Cancel", mock.Anything, int64(1), int64(5)).Return(nil)

		err := newStaffService(appts, new(mockRulesReader), new(mockItemReader)).
			Cancel(context.Background(), 1, 5)
		assert.NoError(t, err)
	})

	t.Run("completed appointment cannot be cancelled", func(t *testing.T) {
		appts := new(mockApptRepo)
		appts.On("GetByID", mock.Anything, int64(1), int64(5)).
			Return(&domain.Appointment{ID: 5, TenantID: 1, Status: domain.AppointmentCompleted}, nil)

		err := newStaffService(appts, new(mockRulesReader), new(mockItemReader)).
			Cancel(context.Background(), 1, 5)
		assert.ErrorIs(t, err, ErrNotCancellable)
		appts.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAdminCalendar(t *testing.T) {
	rules := new(mockRulesReader)
	items := new(mockItemReader)
	appts := new(mockApptRepo)

	rules.On("GetAvailabilityRules", mock.Anything, int64(1)).Return(availability.DefaultRules(), nil)
	items.On("GetByID", mock.Anything, int64(1), int64(5)).
		Return(&domain.ServiceItem{ID: 5, TenantID: 1, DurationMinutes: 60}, nil)
	appts.On("ListScheduledStarts", mock.Anything, int64(1)).Return([]time.Time{}, nil)

	cal, err := newStaffService(appts, rules, items).AdminCalendar(context.Background(), 1, 2025, 6, 5)
	require.NoError(t, err)
	assert.Len(t, cal.Days, 30)

	_, err = newStaffService(appts, rules, items).AdminCalendar(context.Background(), 1, 2025, 0, 5)
	require.Error(t, err)
	assert.True(t, isAvailabilityInputError(err))
}
