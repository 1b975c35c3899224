package models

import (
	"time"

	"github.com/m04kA/SMC-RitualService/internal/domain"
)

// SettingResponse одна настройка admin_settings
type SettingResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
	UpdatedAt   string `json:"updatedAt"`
}

// SettingsListResponse список настроек
type SettingsListResponse struct {
	Settings []*SettingResponse `json:"settings"`
}

// UpdateSettingRequest запрос на изменение настройки
type UpdateSettingRequest struct {
	AdminUserID string `json:"adminUserId"`
	Value       string `json:"value"`
}

// FromDomainSetting конвертирует domain модель в response
func FromDomainSetting(s *domain.AdminSetting) *SettingResponse {
	return &SettingResponse{
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainSettingList конвертирует список domain моделей в response
func FromDomainSettingList(settings []*domain.AdminSetting) *SettingsListResponse {
	result := make([]*SettingResponse, len(settings))
	for i, s := range settings {
		result[i] = FromDomainSetting(s)
	}
	return &SettingsListResponse{Settings: result}
}
