package userservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("userservice client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// UserService недоступен, данные клиента следует оставить пустыми
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
