package get_closure_calendar

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_closure_calendar: internal error")
)
