package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cache:dashboard"

// Cache кэш сводки дашборда в Redis (cache-aside)
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш дашборда
func NewCache(addr, password string, db int, ttl time.Duration) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

// NewCacheWithClient создает кэш поверх готового клиента
func NewCacheWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key ключ сводки для диапазона и дня
func Key(rangeMonths int, day time.Time) string {
	return fmt.Sprintf("%s:range:%d:day:%s", keyPrefix, rangeMonths, day.Format("2006-01-02"))
}

// Get читает значение по ключу в dst. Возвращает false, если ключа нет.
func (c *Cache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("%w: Get - key=%s: %v", ErrCacheRead, key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%w: Get - key=%s: %v", ErrDecode, key, err)
	}

	return true, nil
}

// Set сохраняет значение с TTL кэша
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - key=%s: %v", ErrCacheWrite, key, err)
	}

	return nil
}

// Invalidate удаляет все закэшированные сводки
func (c *Cache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+":*", 100).Iterator()

	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - scan: %v", ErrCacheWrite, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - del: %v", ErrCacheWrite, err)
	}

	return nil
}

// Ping проверяет соединение с Redis
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает клиента Redis
func (c *Cache) Close() error {
	return c.client.Close()
}
