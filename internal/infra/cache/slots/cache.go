package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

const keyPrefix = "smc:slots"

// Cache кеш свободных слотов в Redis.
// Ключи данных включают общее поколение и версию даты: инвалидация увеличивает счетчик,
// старые ключи истекают по TTL
type Cache struct {
	client   redis.UniversalClient
	ttl      time.Duration
	recorder Recorder
	logger   Logger
}

// NewCache создает кеш слотов поверх клиента Redis
func NewCache(client redis.UniversalClient, ttl time.Duration, recorder Recorder, logger Logger) *Cache {
	return &Cache{
		client:   client,
		ttl:      ttl,
		recorder: recorder,
		logger:   logger,
	}
}

// Version поколение и версия даты, под которыми читались слоты.
// Set пишет под той же версией: инвалидация между чтением и записью делает запись невидимой
type Version struct {
	Generation int64
	Date       int64
}

// Get возвращает слоты из кеша и версию, под которой их следует сохранять при промахе.
// barberID == 0 означает выбор любого барбера
func (c *Cache) Get(ctx context.Context, date time.Time, serviceID, barberID int64) ([]string, Version, bool, error) {
	version, err := c.version(ctx, date)
	if err != nil {
		return nil, Version{}, false, err
	}

	raw, err := c.client.Get(ctx, dataKey(date, version, serviceID, barberID)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(false)
		return nil, version, false, nil
	}
	if err != nil {
		return nil, Version{}, false, fmt.Errorf("%w: Get: %v", ErrCacheUnavailable, err)
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.record(false)
		return nil, version, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	c.record(true)
	return slots, version, true, nil
}

// Set сохраняет слоты под версией, полученной из Get
func (c *Cache) Set(ctx context.Context, date time.Time, serviceID, barberID int64, version Version, slots []string) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrDecode, err)
	}

	if err := c.client.Set(ctx, dataKey(date, version, serviceID, barberID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Invalidate сбрасывает все закешированные слоты даты
func (c *Cache) Invalidate(ctx context.Context, date time.Time) error {
	key := versionKey(date)

	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, key)
	// версия живет дольше любых данных, иначе после истечения старые ключи снова станут видимыми
	pipe.Expire(ctx, key, c.ttl*4)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// InvalidateAll сбрасывает слоты всех дат (например, после смены расписания барбера)
func (c *Cache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey()).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateAll: %v", ErrCacheUnavailable, err)
	}
	return nil
}

func (c *Cache) version(ctx context.Context, date time.Time) (Version, error) {
	values, err := c.client.MGet(ctx, generationKey(), versionKey(date)).Result()
	if err != nil {
		return Version{}, fmt.Errorf("%w: version: %v", ErrCacheUnavailable, err)
	}
	if len(values) != 2 {
		return Version{}, fmt.Errorf("%w: version: expected 2 values, got %d", ErrDecode, len(values))
	}

	counters := make([]int64, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return Version{}, fmt.Errorf("%w: version: unexpected type %T", ErrDecode, v)
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w: version: %v", ErrDecode, err)
		}
		counters[i] = n
	}
	return Version{Generation: counters[0], Date: counters[1]}, nil
}

func (c *Cache) record(hit bool) {
	if c.recorder != nil {
		c.recorder.RecordSlotCacheLookup(hit)
	}
}

func versionKey(date time.Time) string {
	return fmt.Sprintf("%s:ver:%s", keyPrefix, date.Format(domain.DateFormat))
}

func generationKey() string {
	return keyPrefix + ":gen"
}

func dataKey(date time.Time, version Version, serviceID, barberID int64) string {
	return fmt.Sprintf("%s:%s:g%d:v%d:s%d:b%d", keyPrefix, date.Format(domain.DateFormat),
		version.Generation, version.Date, serviceID, barberID)
}

// Noop кеш-заглушка для конфигурации без Redis
type Noop struct{}

// Get всегда промах
func (Noop) Get(context.Context, time.Time, int64, int64) ([]string, Version, bool, error) {
	return nil, Version{}, false, nil
}

// Set ничего не делает
func (Noop) Set(context.Context, time.Time, int64, int64, Version, []string) error { return nil }

// Invalidate ничего не делает
func (Noop) Invalidate(context.Context, time.Time) error { return nil }

// InvalidateAll ничего не делает
func (Noop) InvalidateAll(context.Context) error { return nil }
