package stream_bookings

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RitualService/internal/api/handlers"
	"github.com/m04kA/SMC-RitualService/internal/domain"
)

const (
	msgMissingDate           = "не указана дата, ожидается параметр date=YYYY-MM-DD"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStreamingNotSupported = "потоковая передача не поддерживается"

	// heartbeatInterval интервал keep-alive комментариев, чтобы прокси
	// не закрывали простаивающее SSE-соединение
	heartbeatInterval = 30 * time.Second
)

type Handler struct {
	subscriber EventSubscriber
	logger     Logger
}

func NewHandler(subscriber EventSubscriber, logger Logger) *Handler {
	return &Handler{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Handle GET /api/v1/slots/stream?date=YYYY-MM-DD
// SSE-поток событий изменений бронирований выбранной даты. События - только
// сигнал перечитать статусы слотов; сами статусы клиент получает через GET /slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	if _, err := time.Parse(domain.DateFormat, dateParam); err != nil {
		h.logger.Warn("GET /slots/stream - Invalid date: %q", dateParam)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /slots/stream - ResponseWriter does not support flushing")
		handlers.RespondError(w, http.StatusInternalServerError, msgStreamingNotSupported)
		return
	}

	eventCh, err := h.subscriber.Subscribe(r.Context(), dateParam)
	if err != nil {
		h.logger.Error("GET /slots/stream - Failed to subscribe: date=%s, error=%v", dateParam, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("GET /slots/stream - Client subscribed: date=%s", dateParam)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /slots/stream - Client disconnected: date=%s", dateParam)
			return

		case <-heartbeat.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()

		case event, ok := <-eventCh:
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Warn("GET /slots/stream - Failed to marshal event: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			flusher.Flush()
		}
	}
}
