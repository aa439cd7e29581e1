package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	rdb *redis.Client
}

type RedisConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	Password    string        `yaml:"password"`
	Database    int           `yaml:"database"`
	MaxRetries  int           `yaml:"max_retries"`
	PoolSize    int           `yaml:"pool_size"`
	PoolTimeout time.Duration `yaml:"pool_timeout"`
}

// newOptions traduit la configuration applicative en options go-redis
func newOptions(config *RedisConfig) *redis.Options {
	maxRetries := config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	poolSize := config.PoolSize
	if poolSize <= 0 {
		poolSize = 10
	}
	poolTimeout := config.PoolTimeout
	if poolTimeout <= 0 {
		poolTimeout = 30 * time.Second
	}

	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.Database,
		MaxRetries:   maxRetries,
		PoolSize:     poolSize,
		PoolTimeout:  poolTimeout,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MinIdleConns: 2,
	}
}

func NewClient(config *RedisConfig) (*Client, error) {
	rdb := redis.NewClient(newOptions(config))

	client := &Client{
		rdb: rdb,
	}

	// Test connexion
	if err := client.Ping(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return fmt.Errorf("Redis client is nil")
	}

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

func (c *Client) Close() {
	if c.rdb != nil {
		c.rdb.Close()
	}
}

func (c *Client) Client() *redis.Client {
	return c.rdb
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	result := c.rdb.Get(ctx, key)
	if result.Err() == redis.Nil {
		return "", redis.Nil // Conserver l'erreur redis.Nil native
	}
	return result.Val(), result.Err()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	result := c.rdb.Exists(ctx, key)
	return result.Val() > 0, result.Err()
}

func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return c.rdb.Expire(ctx, key, expiration).Err()
}

func (c *Client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, value, expiration).Result()
}

func (c *Client) HSet(ctx context.Context, key string, values ...interface{}) error {
	return c.rdb.HSet(ctx, key, values...).Err()
}

func (c *Client) HGet(ctx context.Context, key, field string) (string, error) {
	result := c.rdb.HGet(ctx, key, field)
	if result.Err() == redis.Nil {
		return "", redis.Nil // Conserver l'erreur redis.Nil native
	}
	return result.Val(), result.Err()
}

func (c *Client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return c.rdb.HGetAll(ctx, key).Result()
}

func (c *Client) HIncrBy(ctx context.Context, key, field string, incr int64) error {
	return c.rdb.HIncrBy(ctx, key, field, incr).Err()
}

func (c *Client) HDel(ctx context.Context, key string, fields ...string) error {
	return c.rdb.HDel(ctx, key, fields...).Err()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.Ping(ctx); err != nil {
		return err
	}

	// Vérifier les statistiques de pool
	stats := c.rdb.PoolStats()
	if stats.TotalConns == 0 {
		return fmt.Errorf("no Redis connections available")
	}

	return nil
}

func (c *Client) Stats() *redis.PoolStats {
	return c.rdb.PoolStats()
}
