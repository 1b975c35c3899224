package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	"github.com/m04kA/SMC-RitualService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-RitualService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RitualService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-RitualService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований: подтверждение и отклонение по
// capability-ссылке, административные операции с аудитом
type Service struct {
	bookingRepo    BookingRepository
	identityClient IdentityClient
	publisher      EventPublisher
	notifier       Notifier
	composer       MessageComposer
	catalog        []domain.Slot
	metrics        Metrics
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	identityClient IdentityClient,
	publisher EventPublisher,
	notifier Notifier,
	composer MessageComposer,
	catalog []domain.Slot,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		identityClient: identityClient,
		publisher:      publisher,
		notifier:       notifier,
		composer:       composer,
		catalog:        catalog,
		metrics:        metrics,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно без аутентификации: знание ID - это и есть право на просмотр
// (capability-контракт ссылки подтверждения)
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.fetch(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// Confirm переводит бронирование pending -> confirmed по предъявленному ID.
// Повторная валидация принадлежности слота не выполняется: обладание ID
// считается достаточным правом. Возвращает wa.me-ссылку с сообщением об
// успешном подтверждении для редиректа пользователя
func (s *Service) Confirm(ctx context.Context, id string) (*models.ConfirmResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%s", id)

	booking, err := s.fetch(ctx, id, "Confirm")
	if err != nil {
		return nil, err
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%s is not pending, status=%s", id, booking.Status)
		return nil, ErrNotPending
	}

	updated, err := s.bookingRepo.UpdateStatusFrom(ctx, id, domain.StatusPending, domain.StatusConfirmed)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Статус сменился между чтением и записью (sweeper или второй клик)
			s.logger.Warn("Confirm: booking id=%s lost pending state before write", id)
			return nil, ErrNotPending
		}
		s.logger.Error("Confirm: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.recordTransition(domain.StatusPending, domain.StatusConfirmed)
	s.publishChange(ctx, events.EventBookingConfirmed, updated)
	s.notifyConfirmed(ctx, updated)

	message := s.composer.ConfirmedMessage(s.slotTime(updated.SlotKey), updated.BookingDate)

	s.logger.Info("Confirm: successfully confirmed booking id=%s", id)
	return &models.ConfirmResponse{
		Booking:     models.FromDomainBooking(updated),
		WhatsAppURL: s.composer.DeepLink(message),
	}, nil
}

// Decline переводит бронирование pending -> cancelled по предъявленному ID
func (s *Service) Decline(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Decline: declining booking id=%s", id)

	booking, err := s.fetch(ctx, id, "Decline")
	if err != nil {
		return nil, err
	}

	if !booking.CanBeDeclined() {
		s.logger.Warn("Decline: booking id=%s is not pending, status=%s", id, booking.Status)
		return nil, ErrNotPending
	}

	updated, err := s.bookingRepo.UpdateStatusFrom(ctx, id, domain.StatusPending, domain.StatusCancelled)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Decline: booking id=%s lost pending state before write", id)
			return nil, ErrNotPending
		}
		s.logger.Error("Decline: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Decline - repository error: %v", ErrInternal, err)
	}

	s.recordTransition(domain.StatusPending, domain.StatusCancelled)
	s.publishChange(ctx, events.EventBookingCancelled, updated)

	s.logger.Info("Decline: successfully declined booking id=%s", id)
	return models.FromDomainBooking(updated), nil
}

// AdminList получает бронирования для админ-таблицы с фильтрацией
// Доступно только администраторам
func (s *Service) AdminList(ctx context.Context, req *models.AdminListRequest) (*models.BookingListResponse, error) {
	s.logger.Info("AdminList: fetching bookings for admin=%s", req.AdminUserID)

	if err := s.checkAdminAccess(ctx, req.AdminUserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("AdminList: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("AdminList: repository error: %v", err)
		return nil, fmt.Errorf("%w: AdminList - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AdminList: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// AdminOverride применяет административный патч в обход обычного жизненного
// цикла. Любой статус допустим из любого состояния; каждая мутация ставит
// adminOverride=true и аудит-поля lastModifiedBy/lastModifiedAt
func (s *Service) AdminOverride(ctx context.Context, id string, req *models.AdminUpdateRequest) (*models.BookingResponse, error) {
	s.logger.Info("AdminOverride: updating booking id=%s by admin=%s", id, req.AdminUserID)

	if err := s.checkAdminAccess(ctx, req.AdminUserID); err != nil {
		return nil, err
	}

	patch, err := req.ToDomainPatch()
	if err != nil {
		s.logger.Warn("AdminOverride: invalid status for booking id=%s", id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	if patch.IsEmpty() {
		s.logger.Warn("AdminOverride: empty patch for booking id=%s", id)
		return nil, fmt.Errorf("%w: empty patch", ErrInvalidInput)
	}

	updated, err := s.bookingRepo.AdminUpdate(ctx, id, patch, req.AdminUserID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("AdminOverride: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("AdminOverride: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: AdminOverride - repository error: %v", ErrInternal, err)
	}

	s.publishChange(ctx, events.EventBookingOverride, updated)

	s.logger.Info("AdminOverride: successfully updated booking id=%s, status=%s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// AdminDelete физически удаляет бронирование в обход state machine
// Доступно только администраторам
func (s *Service) AdminDelete(ctx context.Context, id, adminUserID string) error {
	s.logger.Info("AdminDelete: deleting booking id=%s by admin=%s", id, adminUserID)

	if err := s.checkAdminAccess(ctx, adminUserID); err != nil {
		return err
	}

	// Читаем запись до удаления, чтобы событие содержало дату и слот
	booking, err := s.fetch(ctx, id, "AdminDelete")
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("AdminDelete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: AdminDelete - repository error: %v", ErrInternal, err)
	}

	s.publishChange(ctx, events.EventBookingDeleted, booking)

	s.logger.Info("AdminDelete: successfully deleted booking id=%s", id)
	return nil
}

// Вспомогательные методы

func (s *Service) fetch(ctx context.Context, id, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkAdminAccess проверяет роль администратора через IdentityService
func (s *Service) checkAdminAccess(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrAccessDenied
	}

	isAdmin, err := s.identityClient.HasRole(ctx, userID, identityservice.RoleAdmin)
	if err != nil {
		s.logger.Error("checkAdminAccess: identity service error for user=%s: %v", userID, err)
		return fmt.Errorf("%w: identity service error: %v", ErrInternal, err)
	}
	if !isAdmin {
		s.logger.Warn("checkAdminAccess: user=%s is not an admin", userID)
		return ErrAccessDenied
	}

	return nil
}

// recordTransition увеличивает счётчик переходов, если метрики включены
func (s *Service) recordTransition(from, to domain.BookingStatus) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncBookingTransition(string(from), string(to))
}

// publishChange публикует событие изменения; ошибка публикации только логируется
func (s *Service) publishChange(ctx context.Context, eventType string, b *domain.Booking) {
	event := events.BookingEvent{
		Type:        eventType,
		BookingID:   b.ID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		SlotKey:     b.SlotKey,
		Status:      string(b.Status),
		OccurredAt:  time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publishChange: failed to publish %s for booking id=%s: %v", eventType, b.ID, err)
	}
}

// notifyConfirmed best-effort серверное уведомление о подтверждении.
// Любая ошибка логируется и не влияет на результат перехода
func (s *Service) notifyConfirmed(ctx context.Context, b *domain.Booking) {
	if s.notifier == nil || !s.notifier.Configured() {
		return
	}

	message := s.composer.ConfirmedMessage(s.slotTime(b.SlotKey), b.BookingDate)
	if err := s.notifier.SendText(ctx, b.PhoneNumber, message); err != nil {
		s.logger.Warn("notifyConfirmed: failed to send confirmation for booking id=%s: %v", b.ID, err)
	}
}

// slotTime возвращает отображаемый интервал слота из каталога
func (s *Service) slotTime(slotKey string) string {
	for _, slot := range s.catalog {
		if slot.Key == slotKey {
			return slot.Time
		}
	}
	return slotKey
}
