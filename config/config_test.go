package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_DSN", "TOKEN_TTL", "LOAD_INTERVAL", "RATE_LIMIT", "LOAD_DIR", "CORS_ORIGIN"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "reservations.db", cfg.DBDSN)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 2*time.Second, cfg.LoadInterval)
	assert.Equal(t, 50, cfg.RateLimit)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Empty(t, cfg.LoadDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_DSN", "user:pw@tcp(db:3306)/res?parseTime=true")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("LOAD_DIR", "/srv/load")
	t.Setenv("LOAD_INTERVAL", "500ms")
	t.Setenv("RATE_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "/srv/load", cfg.LoadDir)
	assert.Equal(t, 500*time.Millisecond, cfg.LoadInterval)
	assert.Equal(t, 5, cfg.RateLimit)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"DB_DRIVER":     "postgres",
		"TOKEN_TTL":     "forever",
		"LOAD_INTERVAL": "-1s",
		"RATE_LIMIT":    "0",
		"GIN_MODE":      "fast",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestInitDBSqlite(t *testing.T) {
	db, err := InitDB(Config{DBDriver: "sqlite", DBDSN: "file::memory:"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	_ = sqlDB.Close()
}
