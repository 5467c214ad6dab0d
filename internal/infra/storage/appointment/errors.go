package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrOverlap возвращается, когда EXCLUDE ограничение отклонило пересекающуюся запись
	ErrOverlap = errors.New("appointment.repository: overlapping active appointment")

	// ErrStatusChanged возвращается, когда статус записи изменился до обновления
	ErrStatusChanged = errors.New("appointment.repository: status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
