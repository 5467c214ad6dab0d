package slots

import "errors"

var (
	// ErrCacheUnavailable возвращается при ошибке обращения к Redis
	ErrCacheUnavailable = errors.New("slots.cache: redis unavailable")

	// ErrDecode возвращается, когда значение в кеше не удалось разобрать
	ErrDecode = errors.New("slots.cache: failed to decode cached slots")
)
