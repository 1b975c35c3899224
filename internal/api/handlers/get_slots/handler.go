package get_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RitualService/internal/api/handlers"
	"github.com/m04kA/SMC-RitualService/internal/domain"
	resolveSlots "github.com/m04kA/SMC-RitualService/internal/usecase/resolve_slots"
)

const (
	msgMissingDate = "не указана дата, ожидается параметр date=YYYY-MM-DD"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase ResolveSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ResolveSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateParam)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %q", dateParam)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resolveSlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, resolveSlots.ErrInvalidDate):
			h.logger.Warn("GET /slots - Invalid date: %q", dateParam)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /slots - Failed to resolve slots: date=%s, error=%v", dateParam, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
