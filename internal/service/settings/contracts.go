package settings

import (
	"context"

	"github.com/m04kA/SMC-RitualService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetByKeys(ctx context.Context, keys []string) ([]*domain.AdminSetting, error)
	GetAll(ctx context.Context) ([]*domain.AdminSetting, error)
	Update(ctx context.Context, key, value string) error
}

// IdentityClient интерфейс клиента IdentityService для проверки роли администратора
type IdentityClient interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
