// Package events канал уведомлений об изменениях бронирований поверх Redis pub/sub.
//
// Доставка best-effort: подписчики используют события только как сигнал
// перечитать состояние, корректность резолвера от доставки не зависит
package events

import "time"

// Event types
const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
	EventBookingExpired   = "booking_expired"
	EventBookingOverride  = "booking_admin_override"
	EventBookingDeleted   = "booking_deleted"
)

// BookingEvent уведомление об изменении записи бронирования
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"bookingId"`
	BookingDate string    `json:"bookingDate"` // YYYY-MM-DD
	SlotKey     string    `json:"slotKey"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurredAt"`
}
