package create_booking

import "errors"

var (
	// ErrValidation возвращается при нарушении формата контактных полей;
	// подробности по полям переносит ValidationError
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrSlotNotAvailable возвращается, когда слот уже удержан живой записью
	// (в том числе при проигрыше гонки одновременных create-запросов)
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrUnknownSlot возвращается, когда ключ слота отсутствует в каталоге
	ErrUnknownSlot = errors.New("create_booking: unknown slot key")

	// ErrInvalidDate возвращается при некорректной или прошедшей дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrBookingDisabled возвращается, когда система бронирования выключена настройкой
	ErrBookingDisabled = errors.New("create_booking: booking system is disabled")

	// ErrMaintenanceMode возвращается, когда включён режим обслуживания
	ErrMaintenanceMode = errors.New("create_booking: maintenance mode is enabled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError ошибка валидации с детализацией по полям
type ValidationError struct {
	Fields map[string]string
}

// Error возвращает текст ошибки
func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

// Unwrap позволяет errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
