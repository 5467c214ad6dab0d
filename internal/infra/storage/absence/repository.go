package absence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/pgerrors"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

// Repository репозиторий отсутствий барберов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отсутствий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует отсутствие.
// При существующей паре (barber_id, absence_date) хранилище не меняется и возвращается ErrDuplicateAbsence
func (r *Repository) Create(ctx context.Context, absence *domain.Absence) (*domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("absences").
		Columns("barber_id", "absence_date", "reason").
		Values(absence.BarberID, dateOnly(absence.Date), absence.Reason).
		Suffix("ON CONFLICT (barber_id, absence_date) DO NOTHING RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&absence.ID, &createdAt)

	if errors.Is(err, sql.ErrNoRows) || pgerrors.IsUniqueViolation(err) {
		return nil, ErrDuplicateAbsence
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	absence.CreatedAt = createdAt.Time

	return absence, nil
}

// GetByID получает отсутствие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithBarber().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	absences, err := scanAbsences(rows)
	if err != nil {
		return nil, err
	}
	if len(absences) == 0 {
		return nil, ErrAbsenceNotFound
	}

	return absences[0], nil
}

// Delete удаляет отсутствие
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("absences").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAbsenceNotFound
	}

	return nil
}

// ListFrom получает отсутствия с датой >= from, с именем и активностью барбера.
// barberID опционален. Сортировка по дате, затем по ID барбера
func (r *Repository) ListFrom(ctx context.Context, from time.Time, barberID *int64) ([]*domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectWithBarber().
		Where(squirrel.GtOrEq{"a.absence_date": dateOnly(from)})

	if barberID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.barber_id": *barberID})
	}

	query, args, err := selectBuilder.
		OrderBy("a.absence_date ASC", "a.barber_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFrom - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

// AbsentBarberIDs возвращает ID барберов, отсутствующих в дату date
func (r *Repository) AbsentBarberIDs(ctx context.Context, date time.Time, barberIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool)
	if len(barberIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("barber_id").
		From("absences").
		Where(squirrel.Eq{"absence_date": dateOnly(date)}).
		Where(squirrel.Eq{"barber_id": barberIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AbsentBarberIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("AbsentBarberIDs - execute query", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: AbsentBarberIDs - scan barber_id: %v", ErrScanRow, err)
		}
		result[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, execError("AbsentBarberIDs - rows error", err)
	}

	return result, nil
}

func selectWithBarber() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"a.id",
		"a.barber_id",
		"a.absence_date",
		"a.reason",
		"a.created_at",
		"b.name",
		"b.active",
	).
		From("absences a").
		Join("barbers b ON b.id = a.barber_id")
}

// dateOnly приводит момент к строке даты, чтобы часовой пояс не сдвигал DATE
func dateOnly(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func execError(op string, err error) error {
	if pgerrors.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", pgerrors.ErrSerializationFailure, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

// scanAbsences сканирует результаты запроса в слайс отсутствий
func scanAbsences(rows *sql.Rows) ([]*domain.Absence, error) {
	absences := make([]*domain.Absence, 0)

	for rows.Next() {
		var absence domain.Absence
		var reason sql.NullString
		var createdAt sql.NullTime

		err := rows.Scan(
			&absence.ID,
			&absence.BarberID,
			&absence.Date,
			&reason,
			&createdAt,
			&absence.BarberName,
			&absence.BarberActive,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAbsences - scan row: %v", ErrScanRow, err)
		}

		if reason.Valid {
			r := reason.String
			absence.Reason = &r
		}
		absence.CreatedAt = createdAt.Time

		absences = append(absences, &absence)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAbsences - rows error: %v", ErrScanRow, err)
	}

	return absences, nil
}
