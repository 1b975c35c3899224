package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	"github.com/m04kA/SMC-RitualService/internal/infra/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// SettingsProvider интерфейс снапшота настроек системы
type SettingsProvider interface {
	Snapshot(ctx context.Context) (domain.Settings, error)
}

// EventPublisher интерфейс публикации событий изменений бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// MessageComposer интерфейс составления сообщения подтверждения и deep link-а
type MessageComposer interface {
	PendingMessage(userName, slotTime string, bookingDate time.Time, bookingID string) string
	ConfirmLink(bookingID string) string
	DeepLink(text string) string
}

// Metrics интерфейс бизнес-метрик переходов статусов
type Metrics interface {
	IncBookingTransition(from, to string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
