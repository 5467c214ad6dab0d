package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Значения по умолчанию
const (
	DefaultOpenTime         types.TimeString = "09:00"
	DefaultCloseTime        types.TimeString = "18:00"
	DefaultSlotStep                          = 15 * time.Minute
	DefaultCancellationLead                  = 2 * time.Hour
	DefaultHistoryPageSize                   = 10
	DefaultClosureLookback                   = 30 // дней
)

// Ограничения бизнес-валидации
const (
	MinServiceDurationMinutes = 10
	MaxAbsenceReasonLength    = 255
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие время барбера
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses статусы завершенных записей (история барбера)
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusNoShow,
	StatusCancelled,
}
