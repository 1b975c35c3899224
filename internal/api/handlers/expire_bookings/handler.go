package expire_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-RitualService/internal/api/handlers"
)

type Handler struct {
	useCase ExpireBookingsUseCase
	logger  Logger
}

func NewHandler(useCase ExpireBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/expire
// Эндпоинт публичный и идемпотентный: клиент дёргает его по истечении
// локального отсчёта, но авторитетный результат даёт серверный sweep
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /bookings/expire - Sweep failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
