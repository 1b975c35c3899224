package domain

// Business validation constants
const (
	MinUserNameLength = 2
	MaxUserNameLength = 100
	MinAddressLength  = 5
	MaxAddressLength  = 500
	MaxAdminNotesLength = 500

	// PhonePattern международный формат: опциональный "+", 10-15 цифр,
	// первая цифра 1-9
	PhonePattern = `^\+?[1-9]\d{9,14}$`
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// LiveStatuses статусы, при которых запись удерживает слот
// Используется частичным уникальным индексом и фильтрами выборок
var LiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses полный набор допустимых статусов бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusExpired,
}
