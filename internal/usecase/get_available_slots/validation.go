package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
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

	return nil
}
