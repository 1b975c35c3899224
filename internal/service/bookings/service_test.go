package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	"github.com/m04kA/SMC-RitualService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-RitualService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RitualService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RitualService/pkg/ptr"
)

// Mock структуры

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatusFrom(ctx context.Context, id string, expectedCurrent, newStatus domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, expectedCurrent, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) AdminUpdate(ctx context.Context, id string, patch domain.AdminPatch, modifiedBy string) (*domain.Booking, error) {
	args := m.Called(ctx, id, patch, modifiedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockIdentityClient struct {
	mock.Mock
}

func (m *MockIdentityClient) HasRole(ctx context.Context, userID, role string) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockNotifier) SendText(ctx context.Context, phone, text string) error {
	args := m.Called(ctx, phone, text)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) IncBookingTransition(from, to string) {
	m.Called(from, to)
}

type MockMessageComposer struct {
	mock.Mock
}

func (m *MockMessageComposer) ConfirmedMessage(slotTime string, bookingDate time.Time) string {
	args := m.Called(slotTime, bookingDate)
	return args.String(0)
}

func (m *MockMessageComposer) DeepLink(text string) string {
	args := m.Called(text)
	return args.String(0)
}

// nopLogger без вывода
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testCatalog = []domain.Slot{
	{Key: "morning", Label: "1st Slot", Time: "6AM - 1PM"},
	{Key: "afternoon", Label: "2nd Slot", Time: "3PM - 11PM"},
}

type testDeps struct {
	repo      *MockBookingRepository
	identity  *MockIdentityClient
	publisher *MockEventPublisher
	notifier  *MockNotifier
	composer  *MockMessageComposer
	metrics   *MockMetrics
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		repo:      &MockBookingRepository{},
		identity:  &MockIdentityClient{},
		publisher: &MockEventPublisher{},
		notifier:  &MockNotifier{},
		composer:  &MockMessageComposer{},
		metrics:   &MockMetrics{},
	}
	deps.metrics.On("IncBookingTransition", mock.Anything, mock.Anything).Return().Maybe()
	svc := NewService(deps.repo, deps.identity, deps.publisher, deps.notifier, deps.composer, testCatalog, deps.metrics, nopLogger{})
	return svc, deps
}

func pendingBooking(id string) *domain.Booking {
	now := time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:           id,
		BookingDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		SlotKey:      "morning",
		UserName:     "Иван Петров",
		Address:      "ул. Ленина, д. 10",
		PhoneNumber:  "+79161234567",
		Status:       domain.StatusPending,
		PendingSince: &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ============================ Тесты для GetByID ============================

func TestGetByID_Success(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.repo.On("GetByID", ctx, "b1").Return(pendingBooking("b1"), nil).Once()

	resp, err := svc.GetByID(ctx, "b1")

	assert.NoError(t, err)
	assert.Equal(t, "b1", resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	deps.repo.AssertExpectations(t)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.repo.On("GetByID", ctx, "missing").Return(nil, bookingRepo.ErrBookingNotFound).Once()

	resp, err := svc.GetByID(ctx, "missing")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// ============================ Тесты для Confirm ============================

func TestConfirm_Success(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking("b1")
	confirmed := *booking
	confirmed.Status = domain.StatusConfirmed
	confirmedAt := time.Now()
	confirmed.ConfirmedAt = &confirmedAt

	deps.repo.On("GetByID", ctx, "b1").Return(booking, nil).Once()
	deps.repo.On("UpdateStatusFrom", ctx, "b1", domain.StatusPending, domain.StatusConfirmed).
		Return(&confirmed, nil).Once()
	deps.publisher.On("Publish", ctx, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == events.EventBookingConfirmed && e.BookingID == "b1"
	})).Return(nil).Once()
	deps.notifier.On("Configured").Return(false).Once()
	deps.composer.On("ConfirmedMessage", "6AM - 1PM", booking.BookingDate).Return("confirmed message").Once()
	deps.composer.On("DeepLink", "confirmed message").Return("https://wa.me/79990000000?text=...").Once()

	resp, err := svc.Confirm(ctx, "b1")

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Booking.Status)
	assert.NotEmpty(t, resp.WhatsAppURL)

	deps.repo.AssertExpectations(t)
	deps.publisher.AssertExpectations(t)
	deps.composer.AssertExpectations(t)
	deps.metrics.AssertCalled(t, "IncBookingTransition", "pending", "confirmed")
}

func TestConfirm_NotPending(t *testing.T) {
	testCases := []struct {
		name   string
		status domain.BookingStatus
	}{
		{name: "Already confirmed", status: domain.StatusConfirmed},
		{name: "Cancelled", status: domain.StatusCancelled},
		{name: "Expired", status: domain.StatusExpired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, deps := newTestService()
			ctx := context.Background()

			booking := pendingBooking("b1")
			booking.Status = tc.status

			deps.repo.On("GetByID", ctx, "b1").Return(booking, nil).Once()

			resp, err := svc.Confirm(ctx, "b1")

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrNotPending)
			deps.repo.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// Статус сменился между чтением и условной записью (sweeper или второй клик)
func TestConfirm_LostRaceToSweeper(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.repo.On("GetByID", ctx, "b1").Return(pendingBooking("b1"), nil).Once()
	deps.repo.On("UpdateStatusFrom", ctx, "b1", domain.StatusPending, domain.StatusConfirmed).
		Return(nil, bookingRepo.ErrStatusConflict).Once()

	resp, err := svc.Confirm(ctx, "b1")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNotPending)
	deps.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	deps.metrics.AssertNotCalled(t, "IncBookingTransition", mock.Anything, mock.Anything)
}

// Серверное уведомление best-effort: его ошибка не ломает подтверждение
func TestConfirm_NotifierFailureIsNotFatal(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking("b1")
	confirmed := *booking
	confirmed.Status = domain.StatusConfirmed

	deps.repo.On("GetByID", ctx, "b1").Return(booking, nil).Once()
	deps.repo.On("UpdateStatusFrom", ctx, "b1", domain.StatusPending, domain.StatusConfirmed).
		Return(&confirmed, nil).Once()
	deps.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()
	deps.notifier.On("Configured").Return(true).Once()
	deps.composer.On("ConfirmedMessage", mock.Anything, mock.Anything).Return("msg").Twice()
	deps.notifier.On("SendText", ctx, booking.PhoneNumber, "msg").
		Return(errors.New("cloud api unavailable")).Once()
	deps.composer.On("DeepLink", "msg").Return("deeplink").Once()

	resp, err := svc.Confirm(ctx, "b1")

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	deps.notifier.AssertExpectations(t)
}

// ============================ Тесты для Decline ============================

func TestDecline_Success(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking("b1")
	cancelled := *booking
	cancelled.Status = domain.StatusCancelled

	deps.repo.On("GetByID", ctx, "b1").Return(booking, nil).Once()
	deps.repo.On("UpdateStatusFrom", ctx, "b1", domain.StatusPending, domain.StatusCancelled).
		Return(&cancelled, nil).Once()
	deps.publisher.On("Publish", ctx, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == events.EventBookingCancelled
	})).Return(nil).Once()

	resp, err := svc.Decline(ctx, "b1")

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	deps.repo.AssertExpectations(t)
	deps.metrics.AssertCalled(t, "IncBookingTransition", "pending", "cancelled")
}

func TestDecline_NotPending(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	booking := pendingBooking("b1")
	booking.Status = domain.StatusExpired

	deps.repo.On("GetByID", ctx, "b1").Return(booking, nil).Once()

	resp, err := svc.Decline(ctx, "b1")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNotPending)
}

// ============================ Тесты для админских операций ============================

func TestAdminList_AccessDenied(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.identity.On("HasRole", ctx, "user-1", "admin").Return(false, nil).Once()

	resp, err := svc.AdminList(ctx, &models.AdminListRequest{AdminUserID: "user-1"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrAccessDenied)
	deps.repo.AssertNotCalled(t, "ListWithFilter", mock.Anything, mock.Anything)
}

func TestAdminList_EmptyUserIDFailsClosed(t *testing.T) {
	svc, deps := newTestService()

	resp, err := svc.AdminList(context.Background(), &models.AdminListRequest{AdminUserID: ""})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrAccessDenied)
	deps.identity.AssertNotCalled(t, "HasRole", mock.Anything, mock.Anything, mock.Anything)
}

// Недоступность IdentityService трактуется как отказ в доступе, не как успех
func TestAdminList_IdentityServiceErrorFailsClosed(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.identity.On("HasRole", ctx, "admin-1", "admin").
		Return(false, errors.New("identity service unavailable")).Once()

	resp, err := svc.AdminList(ctx, &models.AdminListRequest{AdminUserID: "admin-1"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInternal)
	deps.repo.AssertNotCalled(t, "ListWithFilter", mock.Anything, mock.Anything)
}

func TestAdminList_Success(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.identity.On("HasRole", ctx, "admin-1", "admin").Return(true, nil).Once()
	deps.repo.On("ListWithFilter", ctx, mock.AnythingOfType("domain.BookingsFilter")).
		Return([]*domain.Booking{pendingBooking("b1"), pendingBooking("b2")}, nil).Once()

	resp, err := svc.AdminList(ctx, &models.AdminListRequest{AdminUserID: "admin-1", OnlyLive: true})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Bookings, 2)
}

func TestAdminOverride_Success(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	updated := pendingBooking("b1")
	updated.Status = domain.StatusConfirmed
	updated.AdminOverride = true
	updated.LastModifiedBy = ptr.Ptr("admin-1")

	req := &models.AdminUpdateRequest{
		AdminUserID: "admin-1",
		Status:      ptr.Ptr("confirmed"),
		AdminNotes:  ptr.Ptr("подтверждено по телефону"),
	}

	deps.identity.On("HasRole", ctx, "admin-1", "admin").Return(true, nil).Once()
	deps.repo.On("AdminUpdate", ctx, "b1", mock.MatchedBy(func(p domain.AdminPatch) bool {
		return p.Status != nil && *p.Status == domain.StatusConfirmed && p.AdminNotes != nil
	}), "admin-1").Return(updated, nil).Once()
	deps.publisher.On("Publish", ctx, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == events.EventBookingOverride
	})).Return(nil).Once()

	resp, err := svc.AdminOverride(ctx, "b1", req)

	assert.NoError(t, err)
	assert.True(t, resp.AdminOverride)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	deps.repo.AssertExpectations(t)
}

func TestAdminOverride_InvalidStatus(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.identity.On("HasRole", ctx, "admin-1", "admin").Return(true, nil).Once()

	req := &models.AdminUpdateRequest{
		AdminUserID: "admin-1",
		Status:      ptr.Ptr("bogus"),
	}

	resp, err := svc.AdminOverride(ctx, "b1", req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	deps.repo.AssertNotCalled(t, "AdminUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOverride_EmptyPatch(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.identity.On("HasRole", ctx, "admin-1", "admin").Return(true, nil).Once()

	resp, err := svc.AdminOverride(ctx, "b1", &models.AdminUpdateRequest{AdminUserID: "admin-1"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminDelete_Success(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.identity.On("HasRole", ctx, "admin-1", "admin").Return(true, nil).Once()
	deps.repo.On("GetByID", ctx, "b1").Return(pendingBooking("b1"), nil).Once()
	deps.repo.On("Delete", ctx, "b1").Return(nil).Once()
	deps.publisher.On("Publish", ctx, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == events.EventBookingDeleted && e.SlotKey == "morning"
	})).Return(nil).Once()

	err := svc.AdminDelete(ctx, "b1", "admin-1")

	assert.NoError(t, err)
	deps.repo.AssertExpectations(t)
	deps.publisher.AssertExpectations(t)
}

func TestAdminDelete_NotFound(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.identity.On("HasRole", ctx, "admin-1", "admin").Return(true, nil).Once()
	deps.repo.On("GetByID", ctx, "missing").Return(nil, bookingRepo.ErrBookingNotFound).Once()

	err := svc.AdminDelete(ctx, "missing", "admin-1")

	assert.ErrorIs(t, err, ErrBookingNotFound)
	deps.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
