package update_setting

import (
	"context"

	"github.com/m04kA/SMC-RitualService/internal/service/settings/models"
)

type SettingsService interface {
	Update(ctx context.Context, key string, req *models.UpdateSettingRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
