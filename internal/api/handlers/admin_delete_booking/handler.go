package admin_delete_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RitualService/internal/api/handlers"
	"github.com/m04kA/SMC-RitualService/internal/service/bookings"
)

const (
	msgBookingNotFound = "бронирование не найдено"
	msgAccessDenied    = "доступ запрещён"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	adminUserID := r.Header.Get("X-User-ID")

	if err := h.service.AdminDelete(r.Context(), id, adminUserID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/bookings/{id} - Access denied: user_id=%s, id=%s", adminUserID, id)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /admin/bookings/{id} - Booking not found: id=%s", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("DELETE /admin/bookings/{id} - Failed to delete booking: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id} - Booking deleted successfully: id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}
