package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "RUN_LOCAL", "STORE_BACKEND", "KV_TABLE", "CORS_ORIGINS",
		"SEED_SAMPLE_PRODUCTS", "IDEMPOTENCY_TTL", "OWNER_TOKEN_HASH",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("KV_TABLE", "storefront-kv")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.False(t, cfg.RunLocal)
	require.Equal(t, kv.BackendMemory, cfg.StoreBackend)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.True(t, cfg.SeedSampleProducts)
	require.Equal(t, 48*time.Hour, cfg.IdempotencyTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RUN_LOCAL", "true")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SEED_SAMPLE_PRODUCTS", "false")
	t.Setenv("IDEMPOTENCY_TTL", "15m")

	cfg := Load()
	require.Equal(t, "9090", cfg.Port)
	require.True(t, cfg.RunLocal)
	require.Equal(t, kv.BackendRedis, cfg.StoreBackend)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	require.False(t, cfg.SeedSampleProducts)
	require.Equal(t, 15*time.Minute, cfg.IdempotencyTTL)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("RUN_LOCAL", "maybe")
	t.Setenv("IDEMPOTENCY_TTL", "-1h")

	cfg := Load()
	require.False(t, cfg.RunLocal)
	require.Equal(t, 48*time.Hour, cfg.IdempotencyTTL)
}
