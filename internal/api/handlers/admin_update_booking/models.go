package admin_update_booking

import "github.com/m04kA/SMC-RitualService/internal/service/bookings/models"

// AdminUpdateBookingRequest HTTP request model: частичный патч записи.
// Любое сочетание полей; незаполненные поля не меняются
type AdminUpdateBookingRequest struct {
	Status      *string `json:"status,omitempty"`
	UserName    *string `json:"userName,omitempty"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	AdminNotes  *string `json:"adminNotes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AdminUpdateBookingRequest) ToServiceRequest(adminUserID string) *models.AdminUpdateRequest {
	return &models.AdminUpdateRequest{
		AdminUserID: adminUserID,
		Status:      r.Status,
		UserName:    r.UserName,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
		AdminNotes:  r.AdminNotes,
	}
}
