package domain

import "time"

// SlotStatus статус слота на конкретную дату, производный от записей бронирований
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotPending   SlotStatus = "pending"
	SlotConfirmed SlotStatus = "confirmed"
	SlotCancelled SlotStatus = "cancelled"
)

// IsBookable returns true if a new booking may target the slot
func (s SlotStatus) IsBookable() bool {
	return s == SlotAvailable
}

// Slot запись каталога слотов; каталог задаётся конфигурацией деплоймента
type Slot struct {
	Key   string // например "morning"
	Label string // например "1st Slot"
	Time  string // например "6AM - 1PM"
}

// SlotView статус одного слота каталога на выбранную дату
type SlotView struct {
	Slot         Slot
	Status       SlotStatus
	PendingSince *time.Time // для клиентского отсчёта окна подтверждения
}

// ResolveSlotStatus выводит статус слота из снапшота бронирований на дату.
// Чистая функция: нет записи или запись expired — слот доступен, иначе статус
// слота равен статусу бронирования.
//
// Уникальность (дата, слот) для живых записей обеспечивается частичным
// уникальным индексом, но старые данные могут содержать дубликаты. При
// нескольких подходящих записях детерминированно берётся самая новая
// (по created_at, затем по id).
func ResolveSlotStatus(bookings []*Booking, slotKey string) SlotStatus {
	booking := LatestForSlot(bookings, slotKey)
	if booking == nil || booking.Status == StatusExpired {
		return SlotAvailable
	}

	switch booking.Status {
	case StatusPending:
		return SlotPending
	case StatusConfirmed:
		return SlotConfirmed
	case StatusCancelled:
		return SlotCancelled
	default:
		return SlotAvailable
	}
}

// LatestForSlot возвращает самую новую запись бронирования для слота
// или nil, если записей нет
func LatestForSlot(bookings []*Booking, slotKey string) *Booking {
	var latest *Booking
	for _, b := range bookings {
		if b.SlotKey != slotKey {
			continue
		}
		if latest == nil {
			latest = b
			continue
		}
		if b.CreatedAt.After(latest.CreatedAt) ||
			(b.CreatedAt.Equal(latest.CreatedAt) && b.ID > latest.ID) {
			latest = b
		}
	}
	return latest
}
