package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, StoreBackendPostgres, cfg.StoreBackend)
	assert.Equal(t, ImageBackendDatabase, cfg.ImageBackend)
	assert.Equal(t, "mentor-mentee-app", cfg.Auth.Issuer)
	assert.Equal(t, "mentor-mentee-users", cfg.Auth.Audience)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("JWT_SECRET", "  s3cret ")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("DB_USE_SSL", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, StoreBackendMemory, cfg.StoreBackend)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Database.UseSSL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadConfigInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	cfg := LoadConfig()
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadConfigInvalidIntFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "abc")
	cfg := LoadConfig()
	assert.Equal(t, 8080, cfg.ServerPort)

	t.Setenv("SERVER_PORT", " 9091 ")
	cfg = LoadConfig()
	assert.Equal(t, 9091, cfg.ServerPort)
}
