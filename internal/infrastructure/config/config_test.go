package config

import (
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Hour, cfg.JWTTTL)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.True(t, cfg.SeedDefaultUsers)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "product_catalog", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":    "secret",
		"ENV":           "production",
		"STORE_DRIVER":  "postgres",
		"POSTGRES_DSN":  "postgres://u:p@db:5432/catalog",
		"CACHE_ENABLED": "false",
		"JWT_TTL":       "30m",
		"REDIS_DB":      "2",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "postgres://u:p@db:5432/catalog", cfg.Postgres.DSN)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadWith_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"unknown driver", map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"}},
		{"zero ttl", map[string]string{"JWT_SECRET": "s", "JWT_TTL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith(envconfig.MapLookuper(tt.env))
			require.Error(t, err)
		})
	}
}
