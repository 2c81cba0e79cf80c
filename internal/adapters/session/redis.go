package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/recharge-proxy/internal/domain"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/config"
	"github.com/jsamuelsen/recharge-proxy/internal/ports"
)

const (
	redisDialTimeout  = 5 * time.Second
	redisReadTimeout  = 3 * time.Second
	redisWriteTimeout = 3 * time.Second
	redisPoolSize     = 10
)

// RedisStore keeps sessions in redis as JSON under a key prefix, with the
// session TTL as the redis expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var (
	_ ports.SessionStore  = (*RedisStore)(nil)
	_ ports.HealthChecker = (*RedisStore)(nil)
)

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  redisReadTimeout,
		WriteTimeout: redisWriteTimeout,
		PoolSize:     redisPoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}

// NewRedisStore wraps a connected client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Get implements ports.SessionStore.
func (s *RedisStore) Get(ctx context.Context, key string) (*domain.CallerSession, error) {
	if key == "" {
		return nil, domain.NewNotFoundError(entityName, "")
	}

	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.NewNotFoundError(entityName, "")
	}

	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var sess domain.CallerSession
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.NewNotFoundError(entityName, ""), err)
	}

	return &sess, nil
}

// Set implements ports.SessionStore.
func (s *RedisStore) Set(ctx context.Context, key string, sess *domain.CallerSession, ttl time.Duration) (string, error) {
	if key == "" {
		key = uuid.NewString()
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("encoding session: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+key, data, ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set: %w", err)
	}

	return key, nil
}

// Expire implements ports.SessionStore.
func (s *RedisStore) Expire(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (s *RedisStore) Name() string {
	return "redis"
}

// Check implements ports.HealthChecker.
func (s *RedisStore) Check(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return domain.NewUnavailableError("redis", err.Error())
	}

	return nil
}

// Close closes the redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
