package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientOptions_AppliqueReglagesConfigures(t *testing.T) {
	opts, connectTimeout := newClientOptions(&MongoConfig{
		URI:            "mongodb://localhost:27017",
		Database:       "patient_migration_audit",
		ConnectTimeout: 5 * time.Second,
		MaxPoolSize:    50,
	})

	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(50), *opts.MaxPoolSize)
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, 5*time.Second, *opts.ConnectTimeout)
	assert.Equal(t, 5*time.Second, connectTimeout)
}

func TestNewClientOptions_ValeursParDefaut(t *testing.T) {
	opts, connectTimeout := newClientOptions(&MongoConfig{
		URI:      "mongodb://localhost:27017",
		Database: "patient_migration_audit",
	})

	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(100), *opts.MaxPoolSize)
	assert.Equal(t, 10*time.Second, connectTimeout)
}
