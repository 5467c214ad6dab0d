package get_available_slots

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

	// ErrDateInPast возвращается, когда запрошена прошедшая дата
	ErrDateInPast = fmt.Errorf("%w: date is in the past", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
