package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/pkg/config"
)

// RedisSweepLock candado del barrido de alertas compartido entre instancias.
// SETNX con TTL: la clave expira sola, no hay unlock explícito.
type RedisSweepLock struct {
	client *redis.Client
	owner  string
}

// NewRedisClient abre el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conexión a Redis: %w", err)
	}
	return client, nil
}

// NewRedisSweepLock owner identifica a la instancia en el valor de la clave.
func NewRedisSweepLock(client *redis.Client, owner string) *RedisSweepLock {
	if owner == "" {
		owner = "1"
	}
	return &RedisSweepLock{client: client, owner: owner}
}

// TryLock devuelve true si esta instancia obtuvo el candado por ttl.
func (l *RedisSweepLock) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, l.owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("candado de barrido: %w", err)
	}
	return ok, nil
}

var _ inventory.SweepLocker = (*RedisSweepLock)(nil)
