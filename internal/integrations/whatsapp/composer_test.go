package whatsapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testComposer() *Composer {
	return NewComposer(
		"+19990001122",
		"https://rituals.example/confirm",
		"https://rituals.example/payment",
		12*time.Hour,
	)
}

func TestConfirmLink(t *testing.T) {
	c := testComposer()

	link := c.ConfirmLink("550e8400-e29b-41d4-a716-446655440000")

	assert.Equal(t, "https://rituals.example/confirm?id=550e8400-e29b-41d4-a716-446655440000", link)
}

func TestPendingMessage(t *testing.T) {
	c := testComposer()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	msg := c.PendingMessage("Ivan", "6AM - 1PM", date, "abc-123")

	assert.Contains(t, msg, "6AM - 1PM")
	assert.Contains(t, msg, "Tuesday, March 10, 2026")
	assert.Contains(t, msg, "https://rituals.example/confirm?id=abc-123")
	// Пользователь видит окно подтверждения прямо в тексте сообщения
	assert.Contains(t, msg, "Please confirm within 12 hours to secure your booking.")
}

func TestConfirmedMessage(t *testing.T) {
	c := testComposer()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	msg := c.ConfirmedMessage("3PM - 11PM", date)

	assert.Contains(t, msg, "confirmed")
	assert.Contains(t, msg, "3PM - 11PM")
	assert.Contains(t, msg, "https://rituals.example/payment")
}

func TestDeepLink(t *testing.T) {
	c := testComposer()

	link := c.DeepLink("hello world & friends")

	// Плюс из номера убирается, текст URL-кодируется
	assert.Equal(t, "https://wa.me/19990001122?text=hello+world+%26+friends", link)
}

func TestExpiryNotice(t *testing.T) {
	testCases := []struct {
		name     string
		window   time.Duration
		expected string
	}{
		{name: "Hours", window: 12 * time.Hour, expected: "Please confirm within 12 hours to secure your booking."},
		{name: "Minutes", window: 10 * time.Minute, expected: "Please confirm within 10 minutes to secure your booking."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewComposer("+1", "https://x", "https://y", tc.window)
			assert.Equal(t, tc.expected, c.ExpiryNotice())
		})
	}
}
