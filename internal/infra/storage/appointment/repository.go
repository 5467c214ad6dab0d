package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/pagination"
	"github.com/m04kA/SMC-BarberService/pkg/pgerrors"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"client_id",
	"barber_id",
	"service_id",
	"start_at",
	"end_at",
	"status",
	"service_name",
	"service_price",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей к барберам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись.
// Пересечение с активной записью того же барбера отклоняется ограничением appointments_no_overlap (ErrOverlap)
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"client_id",
			"barber_id",
			"service_id",
			"start_at",
			"end_at",
			"status",
			"service_name",
			"service_price",
		).
		Values(
			appointment.ClientID,
			appointment.BarberID,
			appointment.ServiceID,
			appointment.StartAt,
			appointment.EndAt,
			appointment.Status,
			appointment.ServiceName,
			appointment.ServicePrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, createError(err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID.
// В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetByID - execute query", err)
	}
	defer rows.Close()

	appointments, err := scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, ErrAppointmentNotFound
	}

	return appointments[0], nil
}

// List получает записи по фильтру.
// По умолчанию сортировка по start_at ASC, при NewestFirst по start_at DESC
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(columns...).From(table), filter)
	if filter.NewestFirst {
		selectBuilder = selectBuilder.OrderBy("start_at DESC", "id DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_at ASC", "id ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("List - execute query", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListPage получает страницу записей по фильтру и общее количество подходящих записей
func (r *Repository) ListPage(ctx context.Context, filter domain.AppointmentFilter, params pagination.Params) ([]*domain.Appointment, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(table), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListPage - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, execError("ListPage - execute count", err)
	}

	selectBuilder := applyFilter(psqlbuilder.Select(columns...).From(table), filter).
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset()))
	if filter.NewestFirst {
		selectBuilder = selectBuilder.OrderBy("start_at DESC", "id DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_at ASC", "id ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListPage - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, execError("ListPage - execute query", err)
	}
	defer rows.Close()

	appointments, err := scanAppointments(rows)
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

// ListOverlapping получает активные записи барберов, пересекающиеся с интервалом
func (r *Repository) ListOverlapping(ctx context.Context, barberIDs []int64, interval domain.Interval) ([]*domain.Appointment, error) {
	if len(barberIDs) == 0 {
		return []*domain.Appointment{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"barber_id": barberIDs}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_at": interval.End}).
		Where(squirrel.Gt{"end_at": interval.Start}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("ListOverlapping - execute query", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus переводит запись из статуса from в статус to.
// Если статус уже не from, возвращает ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})

	if to == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", at)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("UpdateStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

func applyFilter(builder squirrel.SelectBuilder, filter domain.AppointmentFilter) squirrel.SelectBuilder {
	if len(filter.BarberIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"barber_id": filter.BarberIDs})
	}
	if filter.ClientID != nil {
		builder = builder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"start_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}
	return builder
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

// createError отделяет срабатывание appointments_no_overlap от прочих ошибок вставки
func createError(err error) error {
	if pgerrors.IsExclusionViolation(err) {
		return fmt.Errorf("%w: Create: %v", ErrOverlap, err)
	}
	return execError("Create - execute insert", err)
}

// execError оборачивает ошибку выполнения запроса, сохраняя признак конфликта сериализации
func execError(op string, err error) error {
	if pgerrors.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", pgerrors.ErrSerializationFailure, op, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appointment domain.Appointment
		var cancelledAt, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appointment.ID,
			&appointment.ClientID,
			&appointment.BarberID,
			&appointment.ServiceID,
			&appointment.StartAt,
			&appointment.EndAt,
			&appointment.Status,
			&appointment.ServiceName,
			&appointment.ServicePrice,
			&cancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		if cancelledAt.Valid {
			t := cancelledAt.Time
			appointment.CancelledAt = &t
		}
		appointment.CreatedAt = createdAt.Time
		appointment.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, execError("scanAppointments - rows error", err)
	}

	return appointments, nil
}
