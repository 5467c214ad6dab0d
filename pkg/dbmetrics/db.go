package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Recorder получатель метрик запросов и пула соединений
type Recorder interface {
	ObserveDBQuery(operation string, duration time.Duration, err error)
	SetDBPoolStats(open, inUse, idle int, waitCount int64)
}

const defaultStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, снимающая метрики с каждого запроса
type DB struct {
	db       *sql.DB
	recorder Recorder
}

// Wrap оборачивает *sql.DB. recorder может быть nil, тогда метрики не пишутся
func Wrap(db *sql.DB, recorder Recorder) *DB {
	return &DB{db: db, recorder: recorder}
}

// WrapWithDefault оборачивает *sql.DB и запускает периодический сбор статистики пула до закрытия stopCh
func WrapWithDefault(db *sql.DB, recorder Recorder, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, recorder)
	if recorder != nil {
		go wrapped.collectPoolStats(defaultStatsInterval, stopCh)
	}
	return wrapped
}

// Unwrap возвращает исходный *sql.DB
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

// ExecContext выполняет запрос без результата
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

// QueryContext выполняет запрос, возвращающий строки
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

// QueryRowContext выполняет запрос, возвращающий одну строку
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// BeginTx начинает транзакцию, запросы внутри которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, owner: d}, nil
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.recorder == nil {
		return
	}
	if err == sql.ErrNoRows {
		err = nil
	}
	d.recorder.ObserveDBQuery(operationOf(query), time.Since(start), err)
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := d.db.Stats()
			d.recorder.SetDBPoolStats(stats.OpenConnections, stats.InUse, stats.Idle, stats.WaitCount)
		case <-stopCh:
			return
		}
	}
}

// Tx транзакция с метриками
type Tx struct {
	tx    *sql.Tx
	owner *DB
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.owner.observe(query, start, err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.owner.observe(query, start, err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.owner.observe(query, start, row.Err())
	return row
}

func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.owner.observe("COMMIT", start, err)
	return err
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// operationOf возвращает тип запроса по первому ключевому слову (select, insert, ...)
func operationOf(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
