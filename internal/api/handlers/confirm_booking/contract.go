package confirm_booking

import (
	"context"

	"github.com/m04kA/SMC-RitualService/internal/service/bookings/models"
)

type BookingService interface {
	Confirm(ctx context.Context, id string) (*models.ConfirmResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
