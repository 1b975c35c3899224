package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-RitualService/internal/domain"
)

var phoneRegexp = regexp.MustCompile(domain.PhonePattern)

// validateRequest валидирует контактные поля запроса
// Возвращает ValidationError с детализацией по каждому нарушенному полю;
// при любой ошибке валидации запись не выполняется
func validateRequest(req *Request) error {
	fields := make(map[string]string)

	// Границы заданы в символах, не в байтах: многобайтовые имена считаем рунами
	name := strings.TrimSpace(req.UserName)
	if utf8.RuneCountInString(name) < domain.MinUserNameLength {
		fields["userName"] = fmt.Sprintf("name must be at least %d characters", domain.MinUserNameLength)
	} else if utf8.RuneCountInString(name) > domain.MaxUserNameLength {
		fields["userName"] = fmt.Sprintf("name must be at most %d characters", domain.MaxUserNameLength)
	}

	address := strings.TrimSpace(req.Address)
	if utf8.RuneCountInString(address) < domain.MinAddressLength {
		fields["address"] = fmt.Sprintf("address must be at least %d characters", domain.MinAddressLength)
	} else if utf8.RuneCountInString(address) > domain.MaxAddressLength {
		fields["address"] = fmt.Sprintf("address must be at most %d characters", domain.MaxAddressLength)
	}

	phone := strings.TrimSpace(req.PhoneNumber)
	if !phoneRegexp.MatchString(phone) {
		fields["phoneNumber"] = "phone number must be in international format"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

// validateSlotKey проверяет, что ключ слота присутствует в каталоге
func validateSlotKey(catalog []domain.Slot, slotKey string) error {
	for _, slot := range catalog {
		if slot.Key == slotKey {
			return nil
		}
	}
	return ErrUnknownSlot
}

// validateDate проверяет, что дата задана и не в прошлом
func validateDate(bookingDate, now time.Time) error {
	if bookingDate.IsZero() {
		return ErrInvalidDate
	}
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
