package score

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	redis "github.com/redis/go-redis/v9"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds every command. Zero means two seconds.
	Timeout time.Duration
}

// RedisStore keeps each score as a plain string key in Redis.
type RedisStore struct {
	client  *redis.Client
	timeout time.Duration
	logger  *log.Logger
}

// OpenRedis connects to Redis and verifies the connection with a PING.
func OpenRedis(ctx context.Context, opts RedisOptions, logger *log.Logger) (*RedisStore, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}

	return &RedisStore{
		client:  client,
		timeout: timeout,
		logger:  orDefault(logger).WithPrefix("score-redis").With("addr", opts.Addr),
	}, nil
}

func (s *RedisStore) Get(key string) (int, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false
	}
	if err != nil {
		s.logger.Warn("Failed to read score", "key", key, "error", err)
		return 0, false
	}
	v, ok := Parse(raw)
	if !ok {
		s.logger.Warn("Ignoring malformed score", "key", key, "value", raw)
	}
	return v, ok
}

func (s *RedisStore) Set(key string, value int) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, key, Format(value), 0).Err(); err != nil {
		return fmt.Errorf("write score %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete score %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
