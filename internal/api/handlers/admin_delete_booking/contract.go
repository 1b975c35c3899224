package admin_delete_booking

import "context"

type BookingService interface {
	AdminDelete(ctx context.Context, id, adminUserID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
