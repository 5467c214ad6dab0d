package models

import (
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// WorkingDay рабочее окно на день недели (0 - воскресенье)
type WorkingDay struct {
	Weekday   int              `json:"weekday"`
	StartTime types.TimeString `json:"startTime"` // "10:00"
	EndTime   types.TimeString `json:"endTime"`   // "19:00"
}

// ReplaceWorkingHoursRequest запрос на замену расписания
type ReplaceWorkingHoursRequest struct {
	Days []WorkingDay `json:"days"`
}

// WorkingHoursResponse расписание барбера. Пустой список означает часы барбершопа каждый день
type WorkingHoursResponse struct {
	BarberID int64        `json:"barberId"`
	Days     []WorkingDay `json:"days"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(barberID int64, schedule domain.WeeklySchedule) *WorkingHoursResponse {
	resp := &WorkingHoursResponse{
		BarberID: barberID,
		Days:     make([]WorkingDay, 0, len(schedule)),
	}
	for _, wh := range schedule {
		resp.Days = append(resp.Days, WorkingDay{
			Weekday:   int(wh.Weekday),
			StartTime: wh.StartTime,
			EndTime:   wh.EndTime,
		})
	}
	return resp
}
