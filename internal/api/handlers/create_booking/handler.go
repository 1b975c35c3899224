package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RitualService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-RitualService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgValidationFailed   = "некорректные данные бронирования"
	msgSlotNotAvailable   = "выбранный слот уже занят"
	msgUnknownSlot        = "неизвестный ключ слота"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgBookingDisabled    = "система бронирования временно отключена"
	msgMaintenanceMode    = "сервис находится на техническом обслуживании"
)

// ValidationErrorResponse ошибка валидации с детализацией по полям
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Владелец опционален: бронирование работает и без аутентификации
	var ownerUserID *string
	if userID := r.Header.Get("X-User-ID"); userID != "" {
		ownerUserID = &userID
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerUserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *createBooking.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /bookings - Validation failed: fields=%v", validationErr.Fields)
			handlers.RespondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  msgValidationFailed,
				Fields: validationErr.Fields,
			})

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, slot=%s", req.BookingDate, req.SlotKey)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrUnknownSlot):
			h.logger.Warn("POST /bookings - Unknown slot key: slot=%s", req.SlotKey)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrBookingDisabled):
			h.logger.Warn("POST /bookings - Booking system disabled")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgBookingDisabled)

		case errors.Is(err, createBooking.ErrMaintenanceMode):
			h.logger.Warn("POST /bookings - Maintenance mode enabled")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgMaintenanceMode)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, slot=%s, error=%v",
				req.BookingDate, req.SlotKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, date=%s, slot=%s",
		result.ID, req.BookingDate, req.SlotKey)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
