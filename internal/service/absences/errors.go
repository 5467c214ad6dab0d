package absences

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrAbsenceNotFound возвращается, когда отсутствие не найдено
	ErrAbsenceNotFound = fmt.Errorf("%w: absence not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь управляет чужими отсутствиями
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrForbidden)

	// ErrDuplicateAbsence возвращается при повторной регистрации на ту же дату
	ErrDuplicateAbsence = fmt.Errorf("%w: absence already registered for this date", domain.ErrDuplicate)

	// ErrBarberNotFound возвращается, когда барбер не найден или неактивен
	ErrBarberNotFound = fmt.Errorf("%w: barber not found or inactive", domain.ErrValidation)

	// ErrDateInPast возвращается при регистрации отсутствия на прошедшую дату
	ErrDateInPast = fmt.Errorf("%w: absence date is in the past", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("absences service: internal error")
)
