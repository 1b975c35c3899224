package resolve_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RitualService/internal/domain"
)

// UseCase use case вычисления статусов слотов на дату.
// Статус всегда выводится из свежего чтения записей; подписка на изменения
// служит только сигналом перечитать
type UseCase struct {
	bookingRepo BookingRepository
	settings    SettingsProvider
	catalog     []domain.Slot
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	catalog []domain.Slot,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		settings:    settings,
		catalog:     catalog,
		logger:      logger,
	}
}

// Execute возвращает статус каждого слота каталога на указанную дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, ErrInvalidDate
	}

	settings, err := uc.settings.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("ResolveSlots: failed to get settings snapshot: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("ResolveSlots: failed to list bookings for %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	slots := make([]SlotStatus, len(uc.catalog))
	for i, slot := range uc.catalog {
		status := domain.ResolveSlotStatus(bookings, slot.Key)

		view := SlotStatus{
			Key:    slot.Key,
			Label:  slot.Label,
			Time:   slot.Time,
			Status: string(status),
		}

		// Для pending-слота отдаём анкер окна, чтобы клиент мог показать
		// отсчёт и дернуть sweep по его истечении
		if status == domain.SlotPending {
			if b := domain.LatestForSlot(bookings, slot.Key); b != nil {
				view.PendingSince = b.PendingSince
			}
		}

		slots[i] = view
	}

	uc.logger.Info("ResolveSlots: resolved %d slots for %s",
		len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:                 req.Date,
		Slots:                slots,
		BookingSystemEnabled: settings.BookingSystemEnabled,
		MaintenanceMode:      settings.MaintenanceMode,
	}, nil
}
