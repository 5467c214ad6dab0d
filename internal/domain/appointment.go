package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// AppointmentStatus статус записи. Набор значений закрыт: неизвестные статусы отклоняются при разборе
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// ParseAppointmentStatus разбирает строку в статус
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown appointment status %q", ErrValidation, s)
	}
	return status, nil
}

// IsValid true для статусов из закрытого набора
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsActive true, если запись занимает время барбера
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal true для статусов, из которых нет переходов
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// CanTransitionTo проверяет допустимость перехода:
// pending → confirmed, pending|confirmed → cancelled, confirmed → completed|no_show
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled || next == StatusNoShow
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return false
	default:
		return false
	}
}

// Scan реализует sql.Scanner и отклоняет неизвестные значения
func (s *AppointmentStatus) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("appointment status: unsupported scan type %T", src)
	}

	status, err := ParseAppointmentStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Value реализует driver.Valuer
func (s AppointmentStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: unknown appointment status %q", ErrValidation, string(s))
	}
	return string(s), nil
}

// Appointment запись клиента к барберу
type Appointment struct {
	ID        int64
	ClientID  int64
	BarberID  int64
	ServiceID int64
	StartAt   time.Time
	EndAt     time.Time // StartAt + длительность услуги на момент создания
	Status    AppointmentStatus

	// Денормализованные данные для истории
	ServiceName  string
	ServicePrice float64

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Interval занятый интервал записи
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartAt, End: a.EndAt}
}

// Duration длительность записи
func (a *Appointment) Duration() time.Duration {
	return a.EndAt.Sub(a.StartAt)
}

// IsActive true, если запись занимает время барбера
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// AppointmentFilter фильтр выборки записей
type AppointmentFilter struct {
	BarberIDs []int64             // Пусто - все барберы
	ClientID  *int64              // Фильтр по клиенту (опционально)
	From      *time.Time          // start_at >= From (опционально)
	To        *time.Time          // start_at < To (опционально)
	Statuses  []AppointmentStatus // Пусто - все статусы

	NewestFirst bool // Сортировка по start_at DESC
}
