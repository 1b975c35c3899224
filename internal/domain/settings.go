package domain

import "time"

// Setting keys известные ключи admin_settings
const (
	SettingBookingSystemEnabled = "booking_system_enabled"
	SettingMaintenanceMode      = "maintenance_mode"
)

// AdminSetting represents a process-wide configuration entry, mutable only by admin
type AdminSetting struct {
	ID          string
	Key         string
	Value       string
	Description string
	UpdatedAt   time.Time
}

// Settings снапшот настроек, влияющих на возможность бронирования.
// Снимается один раз на операцию, чтобы проверка гейта была чистой функцией
// от (снапшот, запрошенное действие)
type Settings struct {
	BookingSystemEnabled bool
	MaintenanceMode      bool
}

// SettingsFromRows собирает снапшот из строк admin_settings
// Отсутствующие ключи трактуются консервативно: система включена,
// режим обслуживания выключен
func SettingsFromRows(rows []*AdminSetting) Settings {
	s := Settings{BookingSystemEnabled: true, MaintenanceMode: false}
	for _, row := range rows {
		switch row.Key {
		case SettingBookingSystemEnabled:
			s.BookingSystemEnabled = row.Value == "true"
		case SettingMaintenanceMode:
			s.MaintenanceMode = row.Value == "true"
		}
	}
	return s
}

// AllowsBooking returns true if new booking attempts are currently permitted
func (s Settings) AllowsBooking() bool {
	return s.BookingSystemEnabled && !s.MaintenanceMode
}
