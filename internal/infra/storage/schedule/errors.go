package schedule

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrDuplicateWeekday возвращается при повторе дня недели в расписании барбера
	ErrDuplicateWeekday = errors.New("schedule.repository: duplicate weekday for barber")
)
