package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-RitualService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-RitualService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-RitualService/internal/service/settings/models"
)

// knownKeys ключи, доступные для изменения через API
var knownKeys = map[string]struct{}{
	domain.SettingBookingSystemEnabled: {},
	domain.SettingMaintenanceMode:      {},
}

// Service сервис настроек системы бронирования
type Service struct {
	settingsRepo   SettingsRepository
	identityClient IdentityClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	identityClient IdentityClient,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo:   settingsRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// Snapshot снимает снапшот настроек, влияющих на бронирование.
// Снапшот делается один раз на операцию: проверка гейта становится чистой
// функцией от (снапшот, действие)
func (s *Service) Snapshot(ctx context.Context) (domain.Settings, error) {
	rows, err := s.settingsRepo.GetByKeys(ctx, []string{
		domain.SettingBookingSystemEnabled,
		domain.SettingMaintenanceMode,
	})
	if err != nil {
		s.logger.Error("Snapshot: repository error: %v", err)
		return domain.Settings{}, fmt.Errorf("%w: Snapshot - repository error: %v", ErrInternal, err)
	}

	return domain.SettingsFromRows(rows), nil
}

// List возвращает все настройки (для админ-панели и публичного гейта UI)
func (s *Service) List(ctx context.Context) (*models.SettingsListResponse, error) {
	rows, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettingList(rows), nil
}

// Update изменяет значение настройки; доступно только администраторам
func (s *Service) Update(ctx context.Context, key string, req *models.UpdateSettingRequest) error {
	s.logger.Info("Update: setting key=%s by admin=%s", key, req.AdminUserID)

	if err := s.checkAdminAccess(ctx, req.AdminUserID); err != nil {
		return err
	}

	if _, ok := knownKeys[key]; !ok {
		s.logger.Warn("Update: unknown setting key=%s", key)
		return ErrUnknownKey
	}

	if req.Value != "true" && req.Value != "false" {
		s.logger.Warn("Update: invalid value=%q for key=%s", req.Value, key)
		return fmt.Errorf("%w: value must be \"true\" or \"false\"", ErrInvalidInput)
	}

	if err := s.settingsRepo.Update(ctx, key, req.Value); err != nil {
		if errors.Is(err, settingsRepo.ErrSettingNotFound) {
			s.logger.Warn("Update: setting key=%s not found", key)
			return ErrSettingNotFound
		}
		s.logger.Error("Update: repository error for key=%s: %v", key, err)
		return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated setting key=%s to %s", key, req.Value)
	return nil
}

// checkAdminAccess проверяет роль администратора через IdentityService
func (s *Service) checkAdminAccess(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrAccessDenied
	}

	isAdmin, err := s.identityClient.HasRole(ctx, userID, identityservice.RoleAdmin)
	if err != nil {
		s.logger.Error("checkAdminAccess: identity service error for user=%s: %v", userID, err)
		return fmt.Errorf("%w: identity service error: %v", ErrInternal, err)
	}
	if !isAdmin {
		s.logger.Warn("checkAdminAccess: user=%s is not an admin", userID)
		return ErrAccessDenied
	}

	return nil
}
