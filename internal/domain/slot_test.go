package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func makeBooking(id, slotKey string, status BookingStatus, createdAt time.Time) *Booking {
	return &Booking{
		ID:          id,
		BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		SlotKey:     slotKey,
		Status:      status,
		CreatedAt:   createdAt,
	}
}

// ============================ Тесты для ResolveSlotStatus ============================

func TestResolveSlotStatus_NoBookings(t *testing.T) {
	status := ResolveSlotStatus(nil, "morning")
	assert.Equal(t, SlotAvailable, status)
	assert.True(t, status.IsBookable())
}

func TestResolveSlotStatus_StatusMirror(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name           string
		bookingStatus  BookingStatus
		expectedStatus SlotStatus
		bookable       bool
	}{
		{name: "Pending booking", bookingStatus: StatusPending, expectedStatus: SlotPending, bookable: false},
		{name: "Confirmed booking", bookingStatus: StatusConfirmed, expectedStatus: SlotConfirmed, bookable: false},
		{name: "Cancelled booking", bookingStatus: StatusCancelled, expectedStatus: SlotCancelled, bookable: false},
		{name: "Expired booking frees the slot", bookingStatus: StatusExpired, expectedStatus: SlotAvailable, bookable: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := []*Booking{makeBooking("b1", "morning", tc.bookingStatus, now)}

			status := ResolveSlotStatus(bookings, "morning")

			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.bookable, status.IsBookable())
		})
	}
}

func TestResolveSlotStatus_IgnoresOtherSlots(t *testing.T) {
	now := time.Now()
	bookings := []*Booking{
		makeBooking("b1", "afternoon", StatusConfirmed, now),
	}

	assert.Equal(t, SlotAvailable, ResolveSlotStatus(bookings, "morning"))
	assert.Equal(t, SlotConfirmed, ResolveSlotStatus(bookings, "afternoon"))
}

// Дубликаты возможны только в исторических данных: выигрывает самая новая запись
func TestResolveSlotStatus_DuplicatesNewestWins(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	bookings := []*Booking{
		makeBooking("b1", "morning", StatusCancelled, base.Add(time.Hour)),
		makeBooking("b2", "morning", StatusConfirmed, base),
	}

	// b1 новее, его статус определяет слот
	assert.Equal(t, SlotCancelled, ResolveSlotStatus(bookings, "morning"))
}

func TestResolveSlotStatus_DuplicatesSameTimestampTieBreakByID(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	bookings := []*Booking{
		makeBooking("a-lower", "morning", StatusConfirmed, base),
		makeBooking("z-higher", "morning", StatusCancelled, base),
	}

	// При равном created_at детерминированно берётся больший ID
	latest := LatestForSlot(bookings, "morning")
	assert.Equal(t, "z-higher", latest.ID)
	assert.Equal(t, SlotCancelled, ResolveSlotStatus(bookings, "morning"))
}

func TestResolveSlotStatus_OrderIndependent(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	forward := []*Booking{
		makeBooking("b1", "morning", StatusExpired, base),
		makeBooking("b2", "morning", StatusPending, base.Add(time.Minute)),
	}
	reversed := []*Booking{forward[1], forward[0]}

	assert.Equal(t, ResolveSlotStatus(forward, "morning"), ResolveSlotStatus(reversed, "morning"))
	assert.Equal(t, SlotPending, ResolveSlotStatus(forward, "morning"))
}

func TestLatestForSlot_NoMatch(t *testing.T) {
	now := time.Now()
	bookings := []*Booking{makeBooking("b1", "afternoon", StatusPending, now)}

	assert.Nil(t, LatestForSlot(bookings, "morning"))
}

// ============================ Тесты для переходов статусов ============================

func TestBookingStatus_Transitions(t *testing.T) {
	testCases := []struct {
		name       string
		status     BookingStatus
		live       bool
		terminal   bool
		canConfirm bool
	}{
		{name: "Pending", status: StatusPending, live: true, terminal: false, canConfirm: true},
		{name: "Confirmed", status: StatusConfirmed, live: true, terminal: true, canConfirm: false},
		{name: "Cancelled", status: StatusCancelled, live: false, terminal: true, canConfirm: false},
		{name: "Expired", status: StatusExpired, live: false, terminal: true, canConfirm: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := &Booking{Status: tc.status}

			assert.Equal(t, tc.live, b.IsLive())
			assert.Equal(t, tc.terminal, b.IsTerminal())
			assert.Equal(t, tc.canConfirm, b.CanBeConfirmed())
			assert.Equal(t, tc.canConfirm, b.CanBeDeclined())
			assert.True(t, tc.status.IsValid())
		})
	}
}

func TestBookingStatus_InvalidValue(t *testing.T) {
	assert.False(t, BookingStatus("unknown").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}
