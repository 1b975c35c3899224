package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	"github.com/m04kA/SMC-RitualService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RitualService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя SQL-запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с настройками admin_settings
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByKeys получает настройки по списку ключей
// Отсутствующие ключи не считаются ошибкой: вызывающая сторона применяет дефолты
func (r *Repository) GetByKeys(ctx context.Context, keys []string) ([]*domain.AdminSetting, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"setting_key",
		"setting_value",
		"description",
		"updated_at",
	).
		From("admin_settings").
		Where(squirrel.Eq{"setting_key": keys}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByKeys - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKeys - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSettings(rows)
}

// GetAll получает все настройки (для админ-панели)
func (r *Repository) GetAll(ctx context.Context) ([]*domain.AdminSetting, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"setting_key",
		"setting_value",
		"description",
		"updated_at",
	).
		From("admin_settings").
		OrderBy("setting_key ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSettings(rows)
}

// Update обновляет значение настройки по ключу
func (r *Repository) Update(ctx context.Context, key, value string) error {
	query, args, err := psqlbuilder.Update("admin_settings").
		Set("setting_value", value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"setting_key": key}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}

// scanSettings сканирует результаты запроса в слайс настроек
func scanSettings(rows *sql.Rows) ([]*domain.AdminSetting, error) {
	result := make([]*domain.AdminSetting, 0)

	for rows.Next() {
		var (
			s         domain.AdminSetting
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.Description, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanSettings - scan row: %v", ErrScanRow, err)
		}
		s.UpdatedAt = updatedAt.Time
		result = append(result, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSettings - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
