// Package cache — JSON-кэш в Redis с инвалидацией по префиксу.
// Нулевой *Cache (Redis не настроен) ничего не хранит и всегда промахивается.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	opTimeout   = 2 * time.Second
	scanTimeout = 3 * time.Second
	scanBatch   = 1000
	scanRounds  = 10
)

// Cache хранит JSON-значения с общим TTL.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// Connect создаёт клиент Redis и проверяет соединение.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("не удалось подключиться к Redis %s: %w", addr, err)
	}
	return rdb, nil
}

// New создаёт кэш. rdb == nil — кэш выключен.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Enabled сообщает, подключён ли Redis.
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON читает значение key в dst. false — промах или ошибка.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if !c.Enabled() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).WithField("key", key).Warn("Ошибка чтения кэша")
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		log.WithError(err).WithField("key", key).Warn("Повреждённое значение в кэше")
		return false
	}
	return true
}

// SetJSON сохраняет v под ключом key. Ошибки только логируются.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if !c.Enabled() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("Не удалось сериализовать значение для кэша")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("Ошибка записи кэша")
	}
}

// InvalidateByPrefix удаляет ключи с префиксом prefix (SCAN + пайплайн DEL).
func (c *Cache) InvalidateByPrefix(ctx context.Context, prefix string) error {
	if !c.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	var cursor uint64
	for i := 0; i < scanRounds; i++ {
		keys, next, err := c.rdb.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("ошибка SCAN %s*: %w", prefix, err)
		}
		if len(keys) > 0 {
			pipe := c.rdb.Pipeline()
			for _, k := range keys {
				pipe.Del(ctx, k)
			}
			if _, err := pipe.Exec(ctx); err != nil {
				return fmt.Errorf("ошибка удаления ключей %s*: %w", prefix, err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}
