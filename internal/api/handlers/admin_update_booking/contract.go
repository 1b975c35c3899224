package admin_update_booking

import (
	"context"

	"github.com/m04kA/SMC-RitualService/internal/service/bookings/models"
)

type BookingService interface {
	AdminOverride(ctx context.Context, id string, req *models.AdminUpdateRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
