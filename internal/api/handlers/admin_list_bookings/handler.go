package admin_list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RitualService/internal/api/handlers"
	"github.com/m04kA/SMC-RitualService/internal/service/bookings"
)

const (
	msgInvalidFilter = "некорректные параметры фильтрации"
	msgAccessDenied  = "доступ запрещён"
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

// Handle GET /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminUserID := r.Header.Get("X-User-ID")

	req, err := ParseListRequest(adminUserID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.AdminList(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /admin/bookings - Access denied: user_id=%s", adminUserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/bookings - Failed to list bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
