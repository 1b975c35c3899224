package resolve_slots

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("resolve_slots: invalid date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_slots: internal error")
)
