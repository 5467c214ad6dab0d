package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	switch choice := req.Barber.(type) {
	case domain.SpecificBarber:
		if choice.BarberID <= 0 {
			return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
		}
	case domain.AnyBarber:
	default:
		return fmt.Errorf("%w: barber choice is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateSlot проверяет, что [start, start+duration) лежит в окне и начинается на линии сетки
func validateSlot(slot, window domain.Interval, step time.Duration) error {
	if !window.Contains(slot) {
		return fmt.Errorf("%w: %s-%s is outside %s-%s", ErrInvalidTimeSlot,
			slot.Start.Format(domain.TimeFormat), slot.End.Format(domain.TimeFormat),
			window.Start.Format(domain.TimeFormat), window.End.Format(domain.TimeFormat))
	}

	if step > 0 && slot.Start.Sub(window.Start)%step != 0 {
		return fmt.Errorf("%w: %s is not on the %s grid", ErrInvalidTimeSlot,
			slot.Start.Format(domain.TimeFormat), step)
	}

	return nil
}
