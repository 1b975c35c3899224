package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsFromRows_Defaults(t *testing.T) {
	s := SettingsFromRows(nil)

	assert.True(t, s.BookingSystemEnabled)
	assert.False(t, s.MaintenanceMode)
	assert.True(t, s.AllowsBooking())
}

func TestSettingsFromRows(t *testing.T) {
	testCases := []struct {
		name          string
		rows          []*AdminSetting
		enabled       bool
		maintenance   bool
		allowsBooking bool
	}{
		{
			name: "System disabled",
			rows: []*AdminSetting{
				{Key: SettingBookingSystemEnabled, Value: "false"},
			},
			enabled:       false,
			maintenance:   false,
			allowsBooking: false,
		},
		{
			name: "Maintenance mode on",
			rows: []*AdminSetting{
				{Key: SettingBookingSystemEnabled, Value: "true"},
				{Key: SettingMaintenanceMode, Value: "true"},
			},
			enabled:       true,
			maintenance:   true,
			allowsBooking: false,
		},
		{
			name: "Unknown keys ignored",
			rows: []*AdminSetting{
				{Key: "some_future_flag", Value: "false"},
			},
			enabled:       true,
			maintenance:   false,
			allowsBooking: true,
		},
		{
			name: "Non-boolean value treated as false",
			rows: []*AdminSetting{
				{Key: SettingBookingSystemEnabled, Value: "yes"},
			},
			enabled:       false,
			maintenance:   false,
			allowsBooking: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := SettingsFromRows(tc.rows)

			assert.Equal(t, tc.enabled, s.BookingSystemEnabled)
			assert.Equal(t, tc.maintenance, s.MaintenanceMode)
			assert.Equal(t, tc.allowsBooking, s.AllowsBooking())
		})
	}
}
