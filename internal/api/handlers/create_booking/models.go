package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	createBooking "github.com/m04kA/SMC-RitualService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BookingDate string `json:"bookingDate"` // "2026-03-10"
	SlotKey     string `json:"slotKey"`     // "morning" / "afternoon"
	UserName    string `json:"userName"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           string `json:"id"`
	BookingDate  string `json:"bookingDate"`
	SlotKey      string `json:"slotKey"`
	UserName     string `json:"userName"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phoneNumber"`
	Status       string `json:"status"`
	PendingSince string `json:"pendingSince"`
	ConfirmURL   string `json:"confirmUrl"`
	WhatsAppURL  string `json:"whatsappUrl"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(ownerUserID *string) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Date:        bookingDate,
		SlotKey:     r.SlotKey,
		UserName:    r.UserName,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
		OwnerUserID: ownerUserID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		BookingDate:  resp.BookingDate.Format(domain.DateFormat),
		SlotKey:      resp.SlotKey,
		UserName:     resp.UserName,
		Address:      resp.Address,
		PhoneNumber:  resp.PhoneNumber,
		Status:       resp.Status,
		PendingSince: resp.PendingSince.Format(time.RFC3339),
		ConfirmURL:   resp.ConfirmURL,
		WhatsAppURL:  resp.WhatsAppURL,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
