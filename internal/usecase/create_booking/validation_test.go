package create_booking

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RitualService/internal/domain"
)

func validRequest() *Request {
	return &Request{
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		SlotKey:     "morning",
		UserName:    "Иван Петров",
		Address:     "ул. Ленина, д. 10",
		PhoneNumber: "+79161234567",
	}
}

// ============================ Тесты валидации контактных полей ============================

func TestValidateRequest_Success(t *testing.T) {
	assert.NoError(t, validateRequest(validRequest()))
}

func TestValidateRequest_UserName(t *testing.T) {
	testCases := []struct {
		name     string
		userName string
		valid    bool
	}{
		{name: "Minimum length", userName: "Al", valid: true},
		{name: "Too short", userName: "A", valid: false},
		{name: "Only spaces", userName: "   ", valid: false},
		{name: "Maximum length", userName: strings.Repeat("a", domain.MaxUserNameLength), valid: true},
		{name: "Too long", userName: strings.Repeat("a", domain.MaxUserNameLength+1), valid: false},
		// Границы считаются в символах: 100 кириллических букв - это 200 байт, но валидно
		{name: "Maximum length multibyte", userName: strings.Repeat("Ж", domain.MaxUserNameLength), valid: true},
		{name: "Too long multibyte", userName: strings.Repeat("Ж", domain.MaxUserNameLength+1), valid: false},
		{name: "Minimum length multibyte", userName: "Ия", valid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.UserName = tc.userName

			err := validateRequest(req)

			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)

				var validationErr *ValidationError
				assert.True(t, errors.As(err, &validationErr))
				assert.Contains(t, validationErr.Fields, "userName")
			}
		})
	}
}

func TestValidateRequest_Address(t *testing.T) {
	testCases := []struct {
		name    string
		address string
		valid   bool
	}{
		{name: "Minimum length", address: "12345", valid: true},
		{name: "Too short", address: "1234", valid: false},
		{name: "Maximum length", address: strings.Repeat("a", domain.MaxAddressLength), valid: true},
		{name: "Too long", address: strings.Repeat("a", domain.MaxAddressLength+1), valid: false},
		{name: "Maximum length multibyte", address: strings.Repeat("Ж", domain.MaxAddressLength), valid: true},
		{name: "Minimum length multibyte", address: "улица", valid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.Address = tc.address

			err := validateRequest(req)

			if tc.valid {
				assert.NoError(t, err)
			} else {
				var validationErr *ValidationError
				assert.True(t, errors.As(err, &validationErr))
				assert.Contains(t, validationErr.Fields, "address")
			}
		})
	}
}

func TestValidateRequest_PhoneNumber(t *testing.T) {
	testCases := []struct {
		name  string
		phone string
		valid bool
	}{
		{name: "International with plus", phone: "+19876543210", valid: true},
		{name: "Without plus", phone: "79161234567", valid: true},
		{name: "Leading zero", phone: "079161234567", valid: false},
		{name: "Too short", phone: "123", valid: false},
		{name: "With letters", phone: "+7916abc4567", valid: false},
		{name: "Empty", phone: "", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.PhoneNumber = tc.phone

			err := validateRequest(req)

			if tc.valid {
				assert.NoError(t, err)
			} else {
				var validationErr *ValidationError
				assert.True(t, errors.As(err, &validationErr))
				assert.Contains(t, validationErr.Fields, "phoneNumber")
			}
		})
	}
}

func TestValidateRequest_CollectsAllFieldErrors(t *testing.T) {
	req := validRequest()
	req.UserName = "A"
	req.Address = "ко"
	req.PhoneNumber = "123"

	err := validateRequest(req)

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Fields, 3)
}

// ============================ Тесты валидации слота и даты ============================

func TestValidateSlotKey(t *testing.T) {
	catalog := []domain.Slot{
		{Key: "morning", Label: "1st Slot", Time: "6AM - 1PM"},
		{Key: "afternoon", Label: "2nd Slot", Time: "3PM - 11PM"},
	}

	assert.NoError(t, validateSlotKey(catalog, "morning"))
	assert.NoError(t, validateSlotKey(catalog, "afternoon"))
	assert.ErrorIs(t, validateSlotKey(catalog, "evening"), ErrUnknownSlot)
	assert.ErrorIs(t, validateSlotKey(catalog, ""), ErrUnknownSlot)
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		date  time.Time
		valid bool
	}{
		{name: "Today is valid even late in the day", date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), valid: true},
		{name: "Tomorrow", date: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), valid: true},
		{name: "Yesterday", date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), valid: false},
		{name: "Zero date", date: time.Time{}, valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDate(tc.date, now)

			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidDate)
			}
		})
	}
}
