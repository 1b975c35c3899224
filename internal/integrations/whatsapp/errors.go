package whatsapp

import "errors"

var (
	// ErrNotConfigured возвращается, когда серверная отправка не настроена
	ErrNotConfigured = errors.New("whatsapp: cloud api credentials not configured")

	// ErrSendFailed возвращается при ошибке отправки через Cloud API
	ErrSendFailed = errors.New("whatsapp: failed to send message")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("whatsapp: internal error")
)
