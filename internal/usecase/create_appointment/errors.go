package create_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: service not found", domain.ErrValidation)

	// ErrBarberNotFound возвращается, когда барбер не найден или неактивен
	ErrBarberNotFound = fmt.Errorf("%w: barber not found", domain.ErrValidation)

	// ErrStartInPast возвращается, когда время начала не в будущем
	ErrStartInPast = fmt.Errorf("%w: start time must be in the future", domain.ErrValidation)

	// ErrInvalidTimeSlot возвращается, когда время не на сетке или выходит за часы работы
	ErrInvalidTimeSlot = fmt.Errorf("%w: start time is outside the bookable grid", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда слот занят к моменту записи
	ErrSlotNotAvailable = fmt.Errorf("%w: slot not available", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
