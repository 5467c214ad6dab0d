package slots

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient создает клиента Redis и проверяет соединение.
// Недоступность Redis при старте не фатальна: кеш деградирует до промахов
func NewRedisClient(ctx context.Context, addr, password string, db int, logger Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis: unable to reach %s: %v", addr, err)
	}

	return client
}
