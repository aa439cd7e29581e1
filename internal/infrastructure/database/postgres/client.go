package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Client struct {
	pool *pgxpool.Pool
}

type DatabaseConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	Database       string        `yaml:"database"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	SSLMode        string        `yaml:"ssl_mode"`
	MaxConnections int           `yaml:"max_connections"`
	ConnectionTTL  time.Duration `yaml:"connection_ttl"`
	QueryTimeout   time.Duration `yaml:"query_timeout"`
}

// Valeurs appliquées quand la configuration ne précise pas les réglages de pool
const (
	defaultMaxConnections = 25
	defaultConnectionTTL  = 5 * time.Minute
	defaultQueryTimeout   = 30 * time.Second
)

// newPoolConfig traduit la configuration applicative en configuration pgxpool
func newPoolConfig(config *DatabaseConfig) (*pgxpool.Config, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		config.Username,
		config.Password,
		config.Host,
		config.Port,
		config.Database,
		config.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}

	maxConns := config.MaxConnections
	if maxConns <= 0 {
		maxConns = defaultMaxConnections
	}
	connTTL := config.ConnectionTTL
	if connTTL <= 0 {
		connTTL = defaultConnectionTTL
	}
	queryTimeout := config.QueryTimeout
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}

	poolConfig.MaxConns = int32(maxConns)
	poolConfig.MinConns = int32(min(5, maxConns))
	poolConfig.MaxConnLifetime = connTTL
	poolConfig.MaxConnIdleTime = 30 * time.Second

	poolConfig.ConnConfig.ConnectTimeout = 30 * time.Second
	poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%dms", queryTimeout.Milliseconds())
	poolConfig.ConnConfig.RuntimeParams["idle_in_transaction_session_timeout"] = "60s"

	return poolConfig, nil
}

func NewClient(config *DatabaseConfig) (*Client, error) {
	poolConfig, err := newPoolConfig(config)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	client := &Client{
		pool: pool,
	}

	// Test de connexion initial
	if err := client.Ping(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return client, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.pool == nil {
		return fmt.Errorf("database pool is nil")
	}

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection for ping: %w", err)
	}
	defer conn.Release()

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

func (c *Client) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return c.pool.Query(ctx, sql, args...)
}

func (c *Client) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return c.pool.QueryRow(ctx, sql, args...)
}

func (c *Client) Stats() *pgxpool.Stat {
	return c.pool.Stat()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	stats := c.Stats()

	if stats.TotalConns() == 0 {
		return fmt.Errorf("no database connections available")
	}

	if stats.IdleConns() == 0 && stats.AcquiredConns() >= stats.MaxConns() {
		return fmt.Errorf("database connection pool exhausted")
	}

	return c.Ping(ctx)
}
