package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_TYPE", "")
	t.Setenv("REDIS_POOL_SIZE", "")
	t.Setenv("STORAGE_BACKEND", "")

	cfg := Load()

	require.Equal(t, "mysql", cfg.DBType)
	require.Equal(t, 10, cfg.RedisPoolSize)
	require.Equal(t, "local", cfg.StorageBackend)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("REDIS_POOL_SIZE", "25")
	t.Setenv("STORAGE_BACKEND", "s3")

	cfg := Load()

	require.Equal(t, "postgres", cfg.DBType)
	require.Equal(t, 25, cfg.RedisPoolSize)
	require.Equal(t, "s3", cfg.StorageBackend)
}

func TestGetEnvAsInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_NUMBER", "not-a-number")
	require.Equal(t, 7, getEnvAsInt("SOME_NUMBER", 7))
}
