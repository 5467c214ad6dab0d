package get_closure_calendar

import (
	"github.com/m04kA/SMC-BarberService/internal/domain"
	getClosureCalendar "github.com/m04kA/SMC-BarberService/internal/usecase/get_closure_calendar"
)

// ClosureCalendarResponse HTTP response model
type ClosureCalendarResponse struct {
	From        string       `json:"from"`
	ActiveCount int          `json:"activeBarbers"`
	Days        []ClosureDay `json:"days"`
}

// ClosureDay день с отсутствиями
type ClosureDay struct {
	Date           string         `json:"date"`
	Classification string         `json:"classification"` // open | partial | full
	Label          string         `json:"label"`
	AbsentBarbers  []AbsentBarber `json:"absentBarbers"`
}

// AbsentBarber отсутствующий барбер
type AbsentBarber struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getClosureCalendar.Response) *ClosureCalendarResponse {
	days := make([]ClosureDay, 0, len(resp.Days))
	for _, d := range resp.Days {
		absent := make([]AbsentBarber, 0, len(d.AbsentBarbers))
		for _, b := range d.AbsentBarbers {
			absent = append(absent, AbsentBarber{ID: b.ID, Name: b.Name})
		}
		days = append(days, ClosureDay{
			Date:           d.Date.Format(domain.DateFormat),
			Classification: string(d.Classification),
			Label:          d.Label,
			AbsentBarbers:  absent,
		})
	}

	return &ClosureCalendarResponse{
		From:        resp.From.Format(domain.DateFormat),
		ActiveCount: resp.ActiveCount,
		Days:        days,
	}
}
