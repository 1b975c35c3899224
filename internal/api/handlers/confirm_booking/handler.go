package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RitualService/internal/api/handlers"
	"github.com/m04kA/SMC-RitualService/internal/service/bookings"
)

const (
	msgMissingID       = "не указан идентификатор бронирования"
	msgBookingNotFound = "бронирование не найдено"
	msgNotPending      = "бронирование уже обработано или истекло"
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

// Handle POST /api/v1/bookings/{id}/confirm
// Эндпоинт публичный: обладание ID - достаточное право на подтверждение
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	result, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking not found: id=%s", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrNotPending):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking is not pending: id=%s", id)
			handlers.RespondConflict(w, msgNotPending)

		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed to confirm booking: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Booking confirmed successfully: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
