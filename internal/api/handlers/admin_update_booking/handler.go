package admin_update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RitualService/internal/api/handlers"
	"github.com/m04kA/SMC-RitualService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgInvalidStatus      = "недопустимый статус бронирования"
	msgEmptyPatch         = "патч не содержит изменений"
	msgAccessDenied       = "доступ запрещён"
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

// Handle PATCH /api/v1/admin/bookings/{id}
// Административный override: любой статус из любого состояния, запись
// помечается adminOverride с аудит-полями
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	adminUserID := r.Header.Get("X-User-ID")

	var req AdminUpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AdminOverride(r.Context(), id, req.ToServiceRequest(adminUserID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/bookings/{id} - Access denied: user_id=%s, id=%s", adminUserID, id)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id} - Booking not found: id=%s", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/bookings/{id} - Invalid status: id=%s", id)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{id} - Empty patch: id=%s", id)
			handlers.RespondBadRequest(w, msgEmptyPatch)

		default:
			h.logger.Error("PATCH /admin/bookings/{id} - Failed to update booking: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id} - Booking updated successfully: id=%s, status=%s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
