package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// WorkingHours рабочее окно барбера в определенный день недели
type WorkingHours struct {
	ID        int64
	BarberID  int64
	Weekday   time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeeklySchedule недельное расписание одного барбера.
// Пустое расписание означает работу в часы барбершопа каждый день
type WeeklySchedule []WorkingHours

// ForDay рабочее окно на день недели
func (s WeeklySchedule) ForDay(weekday time.Weekday) (WorkingHours, bool) {
	for _, wh := range s {
		if wh.Weekday == weekday {
			return wh, true
		}
	}
	return WorkingHours{}, false
}

// WorkWindow рабочий интервал барбера на дату date внутри окна барбершопа shop.
// false, если барбер в этот день не работает
func (s WeeklySchedule) WorkWindow(date time.Time, shop Interval) (Interval, bool) {
	if len(s) == 0 {
		return shop, !shop.IsEmpty()
	}

	wh, ok := s.ForDay(date.Weekday())
	if !ok {
		return Interval{}, false
	}

	start, err := wh.StartTime.On(date)
	if err != nil {
		return Interval{}, false
	}
	end, err := wh.EndTime.On(date)
	if err != nil {
		return Interval{}, false
	}

	window := shop.Intersect(Interval{Start: start, End: end})
	if window.IsEmpty() {
		return Interval{}, false
	}
	return window, true
}
