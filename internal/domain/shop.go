package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// ShopHours часы работы барбершопа и шаг сетки слотов
type ShopHours struct {
	Open     types.TimeString
	Close    types.TimeString
	Location *time.Location
	SlotStep time.Duration
}

// DefaultShopHours 09:00-18:00 с шагом 15 минут
func DefaultShopHours(loc *time.Location) ShopHours {
	return ShopHours{
		Open:     DefaultOpenTime,
		Close:    DefaultCloseTime,
		Location: loc,
		SlotStep: DefaultSlotStep,
	}
}

// Day возвращает полночь календарного дня date в часовом поясе барбершопа
func (h ShopHours) Day(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, h.location())
}

// Today полночь текущего дня барбершопа
func (h ShopHours) Today(now time.Time) time.Time {
	return h.Day(now.In(h.location()))
}

// WindowOn интервал работы барбершопа в дату date
func (h ShopHours) WindowOn(date time.Time) (Interval, error) {
	day := h.Day(date)
	open, err := h.Open.On(day)
	if err != nil {
		return Interval{}, err
	}
	closeAt, err := h.Close.On(day)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: open, End: closeAt}, nil
}

func (h ShopHours) location() *time.Location {
	if h.Location == nil {
		return time.UTC
	}
	return h.Location
}
