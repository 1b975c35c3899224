// Package expire_bookings sweeper окна подтверждения: переводит pending-записи
// с истёкшим окном в expired.
//
// Запускается внешним планировщиком, клиентом по истечении локального отсчёта
// или фоновым циклом в main; источник запуска не влияет на результат -
// прогон идемпотентен и всегда авторитетен
package expire_bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	"github.com/m04kA/SMC-RitualService/internal/infra/events"
)

// UseCase use case массового истечения pending-бронирований
type UseCase struct {
	bookingRepo  BookingRepository
	publisher    EventPublisher
	expiryWindow time.Duration
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// expiryWindow - параметр деплоймента (часы на проде, минуты на стендах)
func NewUseCase(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	expiryWindow time.Duration,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		expiryWindow: expiryWindow,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один прогон sweeper-а.
// Истекают строго записи с pendingSince < now - expiryWindow; граница
// не включается. Повторный прогон без новых pending-записей ничего не меняет
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	cutoff := now.Add(-uc.expiryWindow)

	expired, err := uc.bookingRepo.ExpirePendingBefore(ctx, cutoff)
	if err != nil {
		uc.logger.Error("ExpireBookings: sweep failed: %v", err)
		return nil, fmt.Errorf("%w: sweep failed: %v", ErrInternal, err)
	}

	for _, b := range expired {
		if uc.metrics != nil {
			uc.metrics.IncBookingTransition(string(domain.StatusPending), string(domain.StatusExpired))
		}
		uc.publishExpired(ctx, b)
	}

	if len(expired) > 0 {
		uc.logger.Info("ExpireBookings: expired %d pending bookings (cutoff=%s)",
			len(expired), cutoff.Format(time.RFC3339))
	}

	return &Response{ExpiredCount: len(expired)}, nil
}

// publishExpired публикует событие истечения; ошибка только логируется
func (uc *UseCase) publishExpired(ctx context.Context, b *domain.Booking) {
	event := events.BookingEvent{
		Type:        events.EventBookingExpired,
		BookingID:   b.ID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		SlotKey:     b.SlotKey,
		Status:      string(b.Status),
		OccurredAt:  time.Now(),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("ExpireBookings: failed to publish event for booking id=%s: %v", b.ID, err)
	}
}
