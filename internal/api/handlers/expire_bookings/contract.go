package expire_bookings

import (
	"context"

	expireBookings "github.com/m04kA/SMC-RitualService/internal/usecase/expire_bookings"
)

type ExpireBookingsUseCase interface {
	Execute(ctx context.Context) (*expireBookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
