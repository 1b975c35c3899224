package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	"github.com/m04kA/SMC-RitualService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-RitualService/internal/infra/storage/booking"
)

// UseCase use case создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	settings     SettingsProvider
	publisher    EventPublisher
	composer     MessageComposer
	catalog      []domain.Slot
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	publisher EventPublisher,
	composer MessageComposer,
	catalog []domain.Slot,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settings:     settings,
		publisher:    publisher,
		composer:     composer,
		catalog:      catalog,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Гонка одновременных запросов на один (дата, слот) решается единственной
// атомарной условной вставкой в репозитории: проигравший получает
// ErrSlotNotAvailable, запись победителя не затрагивается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, slot=%s, name=%s",
		req.Date.Format(domain.DateFormat), req.SlotKey, req.UserName)

	// 1. Валидация контактных полей (ошибки по полям, без записи)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Слот должен существовать в каталоге деплоймента
	if err := validateSlotKey(uc.catalog, req.SlotKey); err != nil {
		uc.logger.Warn("CreateBooking: unknown slot key=%s", req.SlotKey)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 3. Дата не в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed for %s", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 4. Гейт по настройкам: снапшот один раз на операцию
	settings, err := uc.settings.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings snapshot: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if settings.MaintenanceMode {
		uc.logger.Warn("CreateBooking: rejected, maintenance mode is enabled")
		return nil, ErrMaintenanceMode
	}
	if !settings.BookingSystemEnabled {
		uc.logger.Warn("CreateBooking: rejected, booking system is disabled")
		return nil, ErrBookingDisabled
	}

	// 5. Статус слота должен быть available. Индекс покрывает только живые
	// записи, поэтому cancelled он не блокирует - для публичного создания
	// cancelled-слот всё равно занят, это решает резолвер
	existing, err := uc.bookingRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list bookings for %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}
	if status := domain.ResolveSlotStatus(existing, req.SlotKey); !status.IsBookable() {
		uc.logger.Warn("CreateBooking: slot %s/%s is not bookable, status=%s",
			req.Date.Format(domain.DateFormat), req.SlotKey, status)
		return nil, ErrSlotNotAvailable
	}

	// 6. Собираем pending-запись; id генерируется здесь и становится
	// capability-токеном ссылки подтверждения
	booking := &domain.Booking{
		ID:           uuid.NewString(),
		BookingDate:  req.Date,
		SlotKey:      req.SlotKey,
		UserName:     strings.TrimSpace(req.UserName),
		Address:      strings.TrimSpace(req.Address),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Status:       domain.StatusPending,
		PendingSince: &now,
		OwnerUserID:  req.OwnerUserID,
	}

	// 7. Атомарная условная запись - арбитр гонки: проверка выше не защищает
	// от одновременных запросов, их разводит индекс
	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot %s/%s already taken",
				req.Date.Format(domain.DateFormat), req.SlotKey)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	// 8. Метрика и событие изменения (best-effort)
	if uc.metrics != nil {
		uc.metrics.IncBookingTransition("none", string(domain.StatusPending))
	}
	uc.publishCreated(ctx, created)

	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	// 9. Ссылки для дальнейших шагов пользователя
	message := uc.composer.PendingMessage(created.UserName, uc.slotTime(created.SlotKey), created.BookingDate, created.ID)

	return &Response{
		ID:           created.ID,
		BookingDate:  created.BookingDate,
		SlotKey:      created.SlotKey,
		UserName:     created.UserName,
		Address:      created.Address,
		PhoneNumber:  created.PhoneNumber,
		Status:       string(created.Status),
		PendingSince: *created.PendingSince,
		ConfirmURL:   uc.composer.ConfirmLink(created.ID),
		WhatsAppURL:  uc.composer.DeepLink(message),
		CreatedAt:    created.CreatedAt,
		UpdatedAt:    created.UpdatedAt,
	}, nil
}

// publishCreated публикует событие создания; ошибка только логируется
func (uc *UseCase) publishCreated(ctx context.Context, b *domain.Booking) {
	event := events.BookingEvent{
		Type:        events.EventBookingCreated,
		BookingID:   b.ID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		SlotKey:     b.SlotKey,
		Status:      string(b.Status),
		OccurredAt:  time.Now(),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%s: %v", b.ID, err)
	}
}

// slotTime возвращает отображаемый интервал слота из каталога
func (uc *UseCase) slotTime(slotKey string) string {
	for _, slot := range uc.catalog {
		if slot.Key == slotKey {
			return slot.Time
		}
	}
	return slotKey
}
