package get_slots

import (
	"time"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	resolveSlots "github.com/m04kA/SMC-RitualService/internal/usecase/resolve_slots"
)

// SlotResponse статус одного слота каталога на дату
type SlotResponse struct {
	Key          string  `json:"key"`
	Label        string  `json:"label"`
	Time         string  `json:"time"`
	Status       string  `json:"status"`
	PendingSince *string `json:"pendingSince,omitempty"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date                 string         `json:"date"`
	Slots                []SlotResponse `json:"slots"`
	BookingSystemEnabled bool           `json:"bookingSystemEnabled"`
	MaintenanceMode      bool           `json:"maintenanceMode"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			Key:          s.Key,
			Label:        s.Label,
			Time:         s.Time,
			Status:       s.Status,
			PendingSince: formatTimePtr(s.PendingSince),
		}
	}

	return &SlotsResponse{
		Date:                 resp.Date.Format(domain.DateFormat),
		Slots:                slots,
		BookingSystemEnabled: resp.BookingSystemEnabled,
		MaintenanceMode:      resp.MaintenanceMode,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
