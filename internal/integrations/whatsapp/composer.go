// Package whatsapp составление сообщений подтверждения и deep link-ов WhatsApp.
//
// Доставка пользовательского сообщения - ручное действие: клиент перенаправляется
// на wa.me-ссылку с заполненным текстом. Серверная отправка (client.go) используется
// только для best-effort уведомления администратора
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Composer собирает тексты сообщений и deep link-и для перенаправления пользователя
type Composer struct {
	businessPhone  string // номер, на который пользователь отправляет сообщение
	confirmBaseURL string // база ссылки подтверждения, id добавляется query-параметром
	paymentPageURL string // страница с QR-кодом оплаты, добавляется в confirmed-сообщение
	expiryWindow   time.Duration
}

// NewComposer создает composer с параметрами деплоймента
func NewComposer(businessPhone, confirmBaseURL, paymentPageURL string, expiryWindow time.Duration) *Composer {
	return &Composer{
		businessPhone:  strings.TrimPrefix(businessPhone, "+"),
		confirmBaseURL: confirmBaseURL,
		paymentPageURL: paymentPageURL,
		expiryWindow:   expiryWindow,
	}
}

// ConfirmLink возвращает capability-ссылку подтверждения для бронирования.
// Обладание ссылкой (то есть знанием id) - единственное право на подтверждение
func (c *Composer) ConfirmLink(bookingID string) string {
	return fmt.Sprintf("%s?id=%s", c.confirmBaseURL, url.QueryEscape(bookingID))
}

// PendingMessage текст сообщения о созданном бронировании со ссылкой
// подтверждения и напоминанием об окне подтверждения
func (c *Composer) PendingMessage(userName, slotTime string, bookingDate time.Time, bookingID string) string {
	return fmt.Sprintf(
		"Hi, I want to confirm my booking for the %s on %s. Please click to confirm: %s\n\n%s",
		slotTime,
		formatDate(bookingDate),
		c.ConfirmLink(bookingID),
		c.ExpiryNotice(),
	)
}

// ConfirmedMessage текст сообщения об успешном подтверждении с указателем на оплату
func (c *Composer) ConfirmedMessage(slotTime string, bookingDate time.Time) string {
	return fmt.Sprintf(
		"Your booking is confirmed!\n\nDate: %s\nTime: %s\n\nPlease proceed with the payment using the QR code:\n%s\n\nThank you for booking with us!",
		formatDate(bookingDate),
		slotTime,
		c.paymentPageURL,
	)
}

// ExpiryNotice человекочитаемое описание окна подтверждения для UI-подсказок
func (c *Composer) ExpiryNotice() string {
	hours := int(c.expiryWindow.Hours())
	if hours >= 1 {
		return fmt.Sprintf("Please confirm within %d hours to secure your booking.", hours)
	}
	return fmt.Sprintf("Please confirm within %d minutes to secure your booking.", int(c.expiryWindow.Minutes()))
}

// DeepLink возвращает wa.me-ссылку с предзаполненным текстом сообщения
func (c *Composer) DeepLink(text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", c.businessPhone, url.QueryEscape(text))
}

// formatDate форматирует дату в стиле сообщений подтверждения
func formatDate(date time.Time) string {
	return date.Format("Monday, January 2, 2006")
}
