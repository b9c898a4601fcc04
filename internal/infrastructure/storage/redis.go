package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/pkg/config"
)

var _ ports.StorageProvider = (*Redis)(nil)

const redisKeyPrefix = "storefront:session:"

// Redis guarda cada namespace en un hash. Cada escritura renueva el TTL del hash.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// ConnectRedis abre la conexión y verifica con PING.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("storage: ping redis %s: %w", cfg.Addr, err)
	}
	return NewRedis(client, cfg.TTL), nil
}

// NewRedis usa un cliente ya creado. ttl <= 0 desactiva la expiración.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Scope devuelve el namespace ns.
func (r *Redis) Scope(ns string) ports.Storage {
	return &redisScope{r: r, key: redisKeyPrefix + ns}
}

// Close cierra la conexión.
func (r *Redis) Close() error { return r.client.Close() }

// HealthCheck verifica la conexión.
func (r *Redis) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type redisScope struct {
	r   *Redis
	key string
}

func (s *redisScope) Get(ctx context.Context, field string) (string, bool, error) {
	v, err := s.r.client.HGet(ctx, s.key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: redis HGET %s: %w", field, err)
	}
	return v, true, nil
}

func (s *redisScope) Set(ctx context.Context, field, value string) error {
	pipe := s.r.client.TxPipeline()
	pipe.HSet(ctx, s.key, field, value)
	if s.r.ttl > 0 {
		pipe.Expire(ctx, s.key, s.r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storage: redis HSET %s: %w", field, err)
	}
	return nil
}

func (s *redisScope) Delete(ctx context.Context, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.r.client.HDel(ctx, s.key, fields...).Err(); err != nil {
		return fmt.Errorf("storage: redis HDEL: %w", err)
	}
	return nil
}

func (s *redisScope) Clear(ctx context.Context) error {
	if err := s.r.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("storage: redis DEL: %w", err)
	}
	return nil
}
