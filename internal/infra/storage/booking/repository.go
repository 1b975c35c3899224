package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	"github.com/m04kA/SMC-RitualService/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"booking_date",
	"slot_key",
	"user_name",
	"address",
	"phone_number",
	"status",
	"pending_since",
	"confirmed_at",
	"admin_override",
	"admin_notes",
	"last_modified_by",
	"last_modified_at",
	"owner_user_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create атомарно создает pending-бронирование.
//
// Единственная запись, решающая гонку create-запросов: вставка выполняется
// с ON CONFLICT DO NOTHING по частичному уникальному индексу над
// (booking_date, slot_key) для живых статусов (pending, confirmed).
// Проигравший гонку запрос не получает строки и видит ErrSlotTaken;
// запись победителя не затрагивается, частичных состояний не остаётся.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"booking_date",
			"slot_key",
			"user_name",
			"address",
			"phone_number",
			"status",
			"pending_since",
			"owner_user_id",
		).
		Values(
			b.ID,
			b.BookingDate,
			b.SlotKey,
			b.UserName,
			b.Address,
			b.PhoneNumber,
			b.Status,
			b.PendingSince,
			b.OwnerUserID,
		).
		Suffix(`ON CONFLICT (booking_date, slot_key) WHERE status IN ('pending', 'confirmed') DO NOTHING
			RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// Конфликт по частичному индексу: слот уже удержан живой записью
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByDate получает все бронирования на указанную дату
// Сортировка по created_at DESC делает tie-break резолвера детерминированным
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListWithFilter получает бронирования с гибкой фильтрацией для админ-таблицы
//
// Примеры использования:
//
//  1. Все бронирования:
//     filter := domain.BookingsFilter{}
//
//  2. Бронирования за период:
//     filter := domain.BookingsFilter{StartDate: &start, EndDate: &end}
//
//  3. Только ожидающие подтверждения:
//     status := domain.StatusPending
//     filter := domain.BookingsFilter{Status: &status}
//
//  4. Только записи, изменённые администратором:
//     filter := domain.BookingsFilter{OnlyOverrides: true}
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyLive {
		liveStatusStrings := make([]string, len(domain.LiveStatuses))
		for i, s := range domain.LiveStatuses {
			liveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": liveStatusStrings})
	}

	if filter.OnlyOverrides {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"admin_override": true})
	}

	// Порядок админ-таблицы: новые даты сверху, внутри даты - новые записи
	selectBuilder = selectBuilder.OrderBy("booking_date DESC, created_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatusFrom условно переводит бронирование из expectedCurrent в newStatus.
// Переход в confirmed дополнительно ставит confirmed_at = NOW().
// Если запись существует, но статус не совпал, возвращает ErrStatusConflict
func (r *Repository) UpdateStatusFrom(ctx context.Context, id string, expectedCurrent, newStatus domain.BookingStatus) (*domain.Booking, error) {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", newStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": expectedCurrent})

	if newStatus == domain.StatusConfirmed {
		updateBuilder = updateBuilder.Set("confirmed_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Либо записи нет, либо её статус уже не expectedCurrent
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatusFrom - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// AdminUpdate применяет административный патч в обход обычного жизненного цикла.
// Каждое применение ставит admin_override=true и аудит-поля last_modified_*
func (r *Repository) AdminUpdate(ctx context.Context, id string, patch domain.AdminPatch, modifiedBy string) (*domain.Booking, error) {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("admin_override", true).
		Set("last_modified_by", modifiedBy).
		Set("last_modified_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.Status != nil {
		updateBuilder = updateBuilder.Set("status", *patch.Status)
		// Перевод в pending через override перезапускает окно подтверждения
		if *patch.Status == domain.StatusPending {
			updateBuilder = updateBuilder.Set("pending_since", squirrel.Expr("NOW()"))
		}
	}
	if patch.UserName != nil {
		updateBuilder = updateBuilder.Set("user_name", *patch.UserName)
	}
	if patch.Address != nil {
		updateBuilder = updateBuilder.Set("address", *patch.Address)
	}
	if patch.PhoneNumber != nil {
		updateBuilder = updateBuilder.Set("phone_number", *patch.PhoneNumber)
	}
	if patch.AdminNotes != nil {
		updateBuilder = updateBuilder.Set("admin_notes", *patch.AdminNotes)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AdminUpdate - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: AdminUpdate - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ExpirePendingBefore массово переводит pending-записи с pending_since < cutoff
// в expired и возвращает затронутые записи. Идемпотентна: повторный вызов без
// новых pending-записей ничего не меняет
func (r *Repository) ExpirePendingBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Lt{"pending_since": cutoff}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ExpirePendingBefore - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExpirePendingBefore - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Delete удаляет бронирование (физическое удаление, только для администратора)
func (r *Repository) Delete(ctx context.Context, id string) error {
	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// columnList возвращает колонки таблицы одной строкой для RETURNING
func columnList() string {
	list := ""
	for i, col := range bookingColumns {
		if i > 0 {
			list += ", "
		}
		list += col
	}
	return list
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в модель бронирования
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.BookingDate,
		&b.SlotKey,
		&b.UserName,
		&b.Address,
		&b.PhoneNumber,
		&b.Status,
		&b.PendingSince,
		&b.ConfirmedAt,
		&b.AdminOverride,
		&b.AdminNotes,
		&b.LastModifiedBy,
		&b.LastModifiedAt,
		&b.OwnerUserID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
