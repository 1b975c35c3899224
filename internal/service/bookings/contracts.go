package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	"github.com/m04kA/SMC-RitualService/internal/infra/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id string, expectedCurrent, newStatus domain.BookingStatus) (*domain.Booking, error)
	AdminUpdate(ctx context.Context, id string, patch domain.AdminPatch, modifiedBy string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// IdentityClient интерфейс клиента IdentityService для проверки роли администратора
type IdentityClient interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

// EventPublisher интерфейс публикации событий изменений бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// Notifier интерфейс best-effort уведомлений (серверная отправка WhatsApp)
type Notifier interface {
	Configured() bool
	SendText(ctx context.Context, phone, text string) error
}

// MessageComposer интерфейс составления сообщений и deep link-ов
type MessageComposer interface {
	ConfirmedMessage(slotTime string, bookingDate time.Time) string
	DeepLink(text string) string
}

// Metrics интерфейс бизнес-метрик переходов статусов
type Metrics interface {
	IncBookingTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
