package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = fmt.Errorf("%w: barber not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь меняет чужое расписание
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректном расписании
	ErrInvalidInput = fmt.Errorf("%w: invalid working hours", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule service: internal error")
)
