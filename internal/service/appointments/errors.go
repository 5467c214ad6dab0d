package appointments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на запись
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrForbidden)

	// ErrTooLateToCancel возвращается, когда до начала записи осталось меньше допустимого
	ErrTooLateToCancel = fmt.Errorf("%w: too late to cancel", domain.ErrPolicyViolation)

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", domain.ErrPolicyViolation)

	// ErrConcurrentUpdate возвращается, когда статус изменился параллельно
	ErrConcurrentUpdate = fmt.Errorf("%w: appointment was modified concurrently", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments service: internal error")
)
