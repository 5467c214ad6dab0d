package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/pgerrors"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

// Repository репозиторий недельных расписаний барберов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBarber получает расписание барбера, отсортированное по дню недели
func (r *Repository) GetByBarber(ctx context.Context, barberID int64) (domain.WeeklySchedule, error) {
	schedules, err := r.GetByBarbers(ctx, []int64{barberID})
	if err != nil {
		return nil, err
	}
	return schedules[barberID], nil
}

// GetByBarbers получает расписания нескольких барберов.
// Барберы без строк в результате отсутствуют (работают в часы барбершопа)
func (r *Repository) GetByBarbers(ctx context.Context, barberIDs []int64) (map[int64]domain.WeeklySchedule, error) {
	result := make(map[int64]domain.WeeklySchedule)
	if len(barberIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"weekday",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("working_hours").
		Where(squirrel.Eq{"barber_id": barberIDs}).
		OrderBy("barber_id ASC", "weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarbers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetByBarbers - execute query", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wh domain.WorkingHours
		var weekday int
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&wh.ID,
			&wh.BarberID,
			&weekday,
			&wh.StartTime,
			&wh.EndTime,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByBarbers - scan row: %v", ErrScanRow, err)
		}

		wh.Weekday = time.Weekday(weekday)
		wh.CreatedAt = createdAt.Time
		wh.UpdatedAt = updatedAt.Time

		result[wh.BarberID] = append(result[wh.BarberID], wh)
	}

	if err := rows.Err(); err != nil {
		return nil, execError("GetByBarbers - rows error", err)
	}

	return result, nil
}

// Replace заменяет расписание барбера целиком. Вызывать в транзакции
func (r *Repository) Replace(ctx context.Context, barberID int64, days domain.WeeklySchedule) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Replace - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, execError("Replace - execute delete", err)
	}

	if len(days) == 0 {
		return domain.WeeklySchedule{}, nil
	}

	insertBuilder := psqlbuilder.Insert("working_hours").
		Columns("barber_id", "weekday", "start_time", "end_time")
	for _, day := range days {
		insertBuilder = insertBuilder.Values(barberID, int(day.Weekday), day.StartTime, day.EndTime)
	}

	insertQuery, insertArgs, err := insertBuilder.
		Suffix("RETURNING id, barber_id, weekday, start_time, end_time, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Replace - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, insertQuery, insertArgs...)
	if pgerrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: Replace: %v", ErrDuplicateWeekday, err)
	}
	if err != nil {
		return nil, execError("Replace - execute insert", err)
	}
	defer rows.Close()

	saved := make(domain.WeeklySchedule, 0, len(days))
	for rows.Next() {
		var wh domain.WorkingHours
		var weekday int
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&wh.ID,
			&wh.BarberID,
			&weekday,
			&wh.StartTime,
			&wh.EndTime,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: Replace - scan row: %v", ErrScanRow, err)
		}

		wh.Weekday = time.Weekday(weekday)
		wh.CreatedAt = createdAt.Time
		wh.UpdatedAt = updatedAt.Time
		saved = append(saved, wh)
	}

	if err := rows.Err(); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Replace: %v", ErrDuplicateWeekday, err)
		}
		return nil, execError("Replace - rows error", err)
	}

	return saved, nil
}

func execError(op string, err error) error {
	if pgerrors.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", pgerrors.ErrSerializationFailure, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
