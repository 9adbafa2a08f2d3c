package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
)

type mockTenantRepo struct {
	mock.Mock
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *mockTenantRepo) Update(ctx context.Context, t *domain.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTenantRepo) GetAvailabilityRules(ctx context.Context, tenantID int64) (*availability.Rules, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Rules), args.Error(1)
}

func (m *mockTenantRepo) SaveAvailabilityRules(ctx context.Context, tenantID int64, rules *availability.Rules) error {
	args := m.Called(ctx, tenantID, rules)
	return args.Error(0)
}

func TestUpdateProfile(t *testing.T) {
	repo := new(mockTenantRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Tenant{ID: 1, Name: "Old Name"}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Tenant")).Return(nil)

	name := "Main Street Auto"
	city := "Springfield"
	out, err := NewService(repo).UpdateProfile(context.Background(), 1, UpdateProfileRequest{
		Name: &name,
		City: &city,
	})
	require.NoError(t, err)
	assert.Equal(t, "Main Street Auto", out.Name)
	assert.Equal(t, "Springfield", out.City)
}

func TestUpdateProfile_NotFound(t *testing.T) {
	repo := new(mockTenantRepo)
	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(repo).UpdateProfile(context.Background(), 7, UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestUpdateAvailability(t *testing.T) {
	t.Run("valid rules are saved", func(t *testing.T) {
		repo := new(mockTenantRepo)
		repo.On("SaveAvailabilityRules", mock.Anything, int64(1), mock.AnythingOfType("*availability.Rules")).Return(nil)

		rules := availability.DefaultRules()
		saved, err := NewService(repo).UpdateAvailability(context.Background(), 1, rules)
		require.NoError(t, err)
		assert.Equal(t, availability.SchemaVersion, saved.SchemaVersion)
		repo.AssertCalled(t, "SaveAvailabilityRules", mock.Anything, int64(1), rules)
	})

	t.Run("first violation rejects the whole update", func(t *testing.T) {
		repo := new(mockTenantRepo)

		rules := availability.DefaultRules()
		rules.SlotDurationMinutes = 5

		_, err := NewService(repo).UpdateAvailability(context.Background(), 1, rules)
		require.Error(t, err)

		var verr *availability.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "slotDurationMinutes", verr.Field)
		repo.AssertNotCalled(t, "SaveAvailabilityRules", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad weekday time is rejected", func(t *testing.T) {
		repo := new(mockTenantRepo)

		rules := availability.DefaultRules()
		rules.WeeklySchedule["monday"].OpenTime = "8am"

		_, err := NewService(repo).UpdateAvailability(context.Background(), 1, rules)
		var verr *availability.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "monday.openTime", verr.Field)
	})

	t.Run("missing schema version defaults to current", func(t *testing.T) {
		repo := new(mockTenantRepo)
		repo.On("SaveAvailabilityRules", mock.Anything, int64(1), mock.AnythingOfType("*availability.Rules")).Return(nil)

		rules := availability.DefaultRules()
		rules.SchemaVersion = 0

		saved, err := NewService(repo).UpdateAvailability(context.Background(), 1, rules)
		require.NoError(t, err)
		assert.Equal(t, availability.SchemaVersion, saved.SchemaVersion)
	})
}
