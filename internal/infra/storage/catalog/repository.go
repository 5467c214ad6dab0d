package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/pgerrors"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

// Repository репозиторий каталога: услуги и барберы. Только чтение
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID (в том числе неактивную)
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "duration_minutes", "price", "active").
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, execError("GetService - scan service", err)
	}

	return &service, nil
}

// ListActiveServices получает активные услуги, отсортированные по имени
func (r *Repository) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "duration_minutes", "price", "active").
		From("services").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("ListActiveServices - execute query", err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.DurationMinutes,
			&service.Price,
			&service.Active,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActiveServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &service)
	}

	if err := rows.Err(); err != nil {
		return nil, execError("ListActiveServices - rows error", err)
	}

	return services, nil
}

// GetBarber получает барбера по ID (в том числе неактивного).
// В транзакции строка блокируется (FOR UPDATE): это мьютекс барбера при записи
func (r *Repository) GetBarber(ctx context.Context, id int64) (*domain.Barber, error) {
	barbers, err := r.listBarbers(ctx, "GetBarber", squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(barbers) == 0 {
		return nil, ErrBarberNotFound
	}
	return barbers[0], nil
}

// ListActiveBarbers получает активных барберов в порядке возрастания ID.
// В транзакции строки блокируются (FOR UPDATE) в этом же порядке
func (r *Repository) ListActiveBarbers(ctx context.Context) ([]*domain.Barber, error) {
	return r.listBarbers(ctx, "ListActiveBarbers", squirrel.Eq{"active": true})
}

// CountActiveBarbers количество активных барберов на момент запроса
func (r *Repository) CountActiveBarbers(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("barbers").
		Where(squirrel.Eq{"active": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBarbers - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, execError("CountActiveBarbers - scan count", err)
	}

	return count, nil
}

func (r *Repository) listBarbers(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "active").
		From("barbers").
		Where(where).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError(op+" - execute query", err)
	}
	defer rows.Close()

	barbers := make([]*domain.Barber, 0)
	for rows.Next() {
		var barber domain.Barber
		if err := rows.Scan(&barber.ID, &barber.Name, &barber.Active); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		barbers = append(barbers, &barber)
	}

	if err := rows.Err(); err != nil {
		return nil, execError(op+" - rows error", err)
	}

	return barbers, nil
}

func execError(op string, err error) error {
	if pgerrors.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", pgerrors.ErrSerializationFailure, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
