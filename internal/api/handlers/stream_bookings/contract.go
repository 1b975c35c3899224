package stream_bookings

import (
	"context"

	"github.com/m04kA/SMC-RitualService/internal/infra/events"
)

type EventSubscriber interface {
	Subscribe(ctx context.Context, date string) (<-chan events.BookingEvent, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
