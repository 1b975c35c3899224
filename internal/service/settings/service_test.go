package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	"github.com/m04kA/SMC-RitualService/internal/service/settings/models"
)

// Mock структуры

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetByKeys(ctx context.Context, keys []string) ([]*domain.AdminSetting, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AdminSetting), args.Error(1)
}

func (m *MockSettingsRepository) GetAll(ctx context.Context) ([]*domain.AdminSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AdminSetting), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type MockIdentityClient struct {
	mock.Mock
}

func (m *MockIdentityClient) HasRole(ctx context.Context, userID, role string) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

// nopLogger без вывода
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService() (*Service, *MockSettingsRepository, *MockIdentityClient) {
	repo := &MockSettingsRepository{}
	identity := &MockIdentityClient{}
	return NewService(repo, identity, nopLogger{}), repo, identity
}

// ============================ Тесты для Snapshot ============================

func TestSnapshot_Success(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	rows := []*domain.AdminSetting{
		{Key: domain.SettingBookingSystemEnabled, Value: "true"},
		{Key: domain.SettingMaintenanceMode, Value: "true"},
	}
	repo.On("GetByKeys", ctx, []string{
		domain.SettingBookingSystemEnabled,
		domain.SettingMaintenanceMode,
	}).Return(rows, nil).Once()

	snapshot, err := svc.Snapshot(ctx)

	assert.NoError(t, err)
	assert.True(t, snapshot.BookingSystemEnabled)
	assert.True(t, snapshot.MaintenanceMode)
	assert.False(t, snapshot.AllowsBooking())
}

// Отсутствующие строки в admin_settings дают дефолтный снапшот
func TestSnapshot_MissingRowsUseDefaults(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("GetByKeys", ctx, mock.Anything).Return([]*domain.AdminSetting{}, nil).Once()

	snapshot, err := svc.Snapshot(ctx)

	assert.NoError(t, err)
	assert.True(t, snapshot.AllowsBooking())
}

// ============================ Тесты для List ============================

func TestList_Success(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	rows := []*domain.AdminSetting{
		{ID: "1", Key: domain.SettingBookingSystemEnabled, Value: "true", UpdatedAt: time.Now()},
		{ID: "2", Key: domain.SettingMaintenanceMode, Value: "false", UpdatedAt: time.Now()},
	}
	repo.On("GetAll", ctx).Return(rows, nil).Once()

	resp, err := svc.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp.Settings, 2)
	assert.Equal(t, domain.SettingBookingSystemEnabled, resp.Settings[0].Key)
}

// ============================ Тесты для Update ============================

func TestUpdate_Success(t *testing.T) {
	svc, repo, identity := newTestService()
	ctx := context.Background()

	identity.On("HasRole", ctx, "admin-1", "admin").Return(true, nil).Once()
	repo.On("Update", ctx, domain.SettingMaintenanceMode, "true").Return(nil).Once()

	err := svc.Update(ctx, domain.SettingMaintenanceMode, &models.UpdateSettingRequest{
		AdminUserID: "admin-1",
		Value:       "true",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_AccessDenied(t *testing.T) {
	svc, repo, identity := newTestService()
	ctx := context.Background()

	identity.On("HasRole", ctx, "user-1", "admin").Return(false, nil).Once()

	err := svc.Update(ctx, domain.SettingMaintenanceMode, &models.UpdateSettingRequest{
		AdminUserID: "user-1",
		Value:       "true",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_UnknownKey(t *testing.T) {
	svc, repo, identity := newTestService()
	ctx := context.Background()

	identity.On("HasRole", ctx, "admin-1", "admin").Return(true, nil).Once()

	err := svc.Update(ctx, "unknown_key", &models.UpdateSettingRequest{
		AdminUserID: "admin-1",
		Value:       "true",
	})

	assert.ErrorIs(t, err, ErrUnknownKey)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_InvalidValue(t *testing.T) {
	svc, repo, identity := newTestService()
	ctx := context.Background()

	identity.On("HasRole", ctx, "admin-1", "admin").Return(true, nil).Once()

	err := svc.Update(ctx, domain.SettingMaintenanceMode, &models.UpdateSettingRequest{
		AdminUserID: "admin-1",
		Value:       "enabled",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
