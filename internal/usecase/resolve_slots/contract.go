package resolve_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RitualService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// SettingsProvider интерфейс снапшота настроек системы
type SettingsProvider interface {
	Snapshot(ctx context.Context) (domain.Settings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
