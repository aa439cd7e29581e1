package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOptions_AppliqueReglagesConfigures(t *testing.T) {
	opts := newOptions(&RedisConfig{
		Host:        "localhost",
		Port:        6379,
		Database:    2,
		MaxRetries:  5,
		PoolSize:    20,
		PoolTimeout: 10 * time.Second,
	})

	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 5, opts.MaxRetries)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 10*time.Second, opts.PoolTimeout)
}

func TestNewOptions_ValeursParDefaut(t *testing.T) {
	opts := newOptions(&RedisConfig{
		Host: "localhost",
		Port: 6379,
	})

	assert.Equal(t, 3, opts.MaxRetries)
	assert.Equal(t, 10, opts.PoolSize)
	assert.Equal(t, 30*time.Second, opts.PoolTimeout)
}
