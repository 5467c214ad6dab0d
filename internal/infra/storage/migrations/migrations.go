package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
)

//go:embed sql/*.sql
var files embed.FS

var (
	// ErrReadMigrations возвращается, когда не удалось прочитать встроенные миграции
	ErrReadMigrations = errors.New("migrations: failed to read migrations")

	// ErrApplyMigration возвращается при ошибке применения миграции
	ErrApplyMigration = errors.New("migrations: failed to apply migration")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// TxRunner выполняет функцию в транзакции
type TxRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    VARCHAR(255) PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Names возвращает имена встроенных миграций в порядке применения
func Names() ([]string, error) {
	entries, err := fs.ReadDir(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMigrations, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// Run применяет еще не примененные миграции. Каждая миграция выполняется в своей транзакции
func Run(ctx context.Context, db dbmetrics.DBExecutor, tx TxRunner, log Logger) error {
	if _, err := db.ExecContext(ctx, createVersionsTable); err != nil {
		return fmt.Errorf("%w: create schema_migrations: %v", ErrApplyMigration, err)
	}

	names, err := Names()
	if err != nil {
		return err
	}

	applied := 0
	for _, name := range names {
		content, err := files.ReadFile("sql/" + name)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrReadMigrations, name, err)
		}

		var done bool
		err = tx.Do(ctx, func(ctx context.Context) error {
			executor := dbmetrics.GetExecutor(ctx, db)

			var exists bool
			if err := executor.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, name,
			).Scan(&exists); err != nil {
				return err
			}
			if exists {
				return nil
			}

			if _, err := executor.ExecContext(ctx, string(content)); err != nil {
				return err
			}
			if _, err := executor.ExecContext(ctx,
				`INSERT INTO schema_migrations (version) VALUES ($1)`, name,
			); err != nil {
				return err
			}
			done = true
			return nil
		})
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrApplyMigration, name, err)
		}

		if done {
			log.Info("Migrations: applied %s", name)
			applied++
		}
	}

	log.Info("Migrations: %d applied, %d total", applied, len(names))
	return nil
}
