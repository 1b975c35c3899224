package update_setting

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RitualService/internal/api/handlers"
	"github.com/m04kA/SMC-RitualService/internal/service/settings"
	settingsModels "github.com/m04kA/SMC-RitualService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownKey         = "неизвестный ключ настройки"
	msgSettingNotFound    = "настройка не найдена"
	msgInvalidValue       = "некорректное значение настройки, ожидается \"true\" или \"false\""
	msgAccessDenied       = "доступ запрещён"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/settings/{key}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	adminUserID := r.Header.Get("X-User-ID")

	var req UpdateSettingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings/{key} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.Update(r.Context(), key, &settingsModels.UpdateSettingRequest{
		AdminUserID: adminUserID,
		Value:       req.Value,
	})
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("PUT /admin/settings/{key} - Access denied: user_id=%s, key=%s", adminUserID, key)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, settings.ErrUnknownKey):
			h.logger.Warn("PUT /admin/settings/{key} - Unknown key: key=%s", key)
			handlers.RespondBadRequest(w, msgUnknownKey)

		case errors.Is(err, settings.ErrSettingNotFound):
			h.logger.Warn("PUT /admin/settings/{key} - Setting not found: key=%s", key)
			handlers.RespondNotFound(w, msgSettingNotFound)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/settings/{key} - Invalid value: key=%s, value=%q", key, req.Value)
			handlers.RespondBadRequest(w, msgInvalidValue)

		default:
			h.logger.Error("PUT /admin/settings/{key} - Failed to update setting: key=%s, error=%v", key, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/settings/{key} - Setting updated successfully: key=%s, value=%s", key, req.Value)
	handlers.RespondJSON(w, http.StatusOK, UpdateSettingResponse{Key: key, Value: req.Value})
}
