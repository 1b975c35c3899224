package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusExpired   BookingStatus = "expired"
)

// IsValid проверяет, что статус входит в допустимый набор
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// Booking represents a slot booking for a given calendar date
// ID одновременно является capability-токеном: знание ID из ссылки подтверждения
// даёт право подтвердить или отклонить бронирование
type Booking struct {
	ID          string
	BookingDate time.Time // только дата, без времени
	SlotKey     string

	UserName    string
	Address     string
	PhoneNumber string

	Status       BookingStatus
	PendingSince *time.Time // анкер для вычисления истечения
	ConfirmedAt  *time.Time

	// Аудит административных изменений
	AdminOverride  bool
	AdminNotes     *string
	LastModifiedBy *string
	LastModifiedAt *time.Time

	OwnerUserID *string // nil, если бронирование создано без аутентификации

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLive returns true if the booking holds its slot (pending or confirmed)
func (b *Booking) IsLive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached a terminal state under normal flow
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCancelled || b.Status == StatusExpired
}

// CanBeConfirmed returns true if the booking can be confirmed by the link holder
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeDeclined returns true if the booking can be declined by the link holder
func (b *Booking) CanBeDeclined() bool {
	return b.Status == StatusPending
}

// AdminPatch набор изменений, применяемых администратором в обход обычного
// жизненного цикла; каждое применение ставит admin_override=true и аудит-поля
type AdminPatch struct {
	Status      *BookingStatus
	UserName    *string
	Address     *string
	PhoneNumber *string
	AdminNotes  *string
}

// IsEmpty returns true if the patch changes nothing
func (p *AdminPatch) IsEmpty() bool {
	return p.Status == nil && p.UserName == nil && p.Address == nil &&
		p.PhoneNumber == nil && p.AdminNotes == nil
}

// BookingsFilter фильтр для выборки бронирований в админ-таблице
type BookingsFilter struct {
	StartDate     *time.Time     // Начало периода (опционально)
	EndDate       *time.Time     // Конец периода (опционально)
	Status        *BookingStatus // Фильтр по статусу (опционально)
	OnlyLive      bool           // Только pending/confirmed
	OnlyOverrides bool           // Только записи с admin_override
}
