package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RitualService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// AdminListRequest запрос на выборку бронирований для админ-таблицы
type AdminListRequest struct {
	AdminUserID   string     `json:"adminUserId"`
	StartDate     *time.Time `json:"startDate,omitempty"`     // Начало периода (опционально)
	EndDate       *time.Time `json:"endDate,omitempty"`       // Конец периода (опционально)
	Status        *string    `json:"status,omitempty"`        // Фильтр по статусу (опционально)
	OnlyLive      bool       `json:"onlyLive,omitempty"`      // Только pending/confirmed
	OnlyOverrides bool       `json:"onlyOverrides,omitempty"` // Только изменённые администратором
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *AdminListRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		OnlyLive:      r.OnlyLive,
		OnlyOverrides: r.OnlyOverrides,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// AdminUpdateRequest административный патч бронирования
type AdminUpdateRequest struct {
	AdminUserID string  `json:"adminUserId"`
	Status      *string `json:"status,omitempty"`
	UserName    *string `json:"userName,omitempty"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	AdminNotes  *string `json:"adminNotes,omitempty"`
}

// ToDomainPatch конвертирует request в domain патч
func (r *AdminUpdateRequest) ToDomainPatch() (domain.AdminPatch, error) {
	patch := domain.AdminPatch{
		UserName:    r.UserName,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
		AdminNotes:  r.AdminNotes,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}

	return patch, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string  `json:"id"`
	BookingDate  string  `json:"bookingDate"` // "2025-03-10"
	SlotKey      string  `json:"slotKey"`
	UserName     string  `json:"userName"`
	Address      string  `json:"address"`
	PhoneNumber  string  `json:"phoneNumber"`
	Status       string  `json:"status"`
	PendingSince *string `json:"pendingSince,omitempty"`
	ConfirmedAt  *string `json:"confirmedAt,omitempty"`

	AdminOverride  bool    `json:"adminOverride"`
	AdminNotes     *string `json:"adminNotes,omitempty"`
	LastModifiedBy *string `json:"lastModifiedBy,omitempty"`
	LastModifiedAt *string `json:"lastModifiedAt,omitempty"`

	OwnerUserID *string `json:"ownerUserId,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ConfirmResponse ответ на подтверждение бронирования
type ConfirmResponse struct {
	Booking     *BookingResponse `json:"booking"`
	WhatsAppURL string           `json:"whatsappUrl"` // некритичный редирект после подтверждения
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:             b.ID,
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		SlotKey:        b.SlotKey,
		UserName:       b.UserName,
		Address:        b.Address,
		PhoneNumber:    b.PhoneNumber,
		Status:         string(b.Status),
		PendingSince:   formatTimePtr(b.PendingSince),
		ConfirmedAt:    formatTimePtr(b.ConfirmedAt),
		AdminOverride:  b.AdminOverride,
		AdminNotes:     b.AdminNotes,
		LastModifiedBy: b.LastModifiedBy,
		LastModifiedAt: formatTimePtr(b.LastModifiedAt),
		OwnerUserID:    b.OwnerUserID,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список domain моделей в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
