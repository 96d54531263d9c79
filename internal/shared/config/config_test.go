package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "v1", cfg.APIVersion)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)

	assert.Equal(t, "", cfg.JWT.Secret)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiresIn)

	assert.Equal(t, 15*time.Minute, cfg.Redis.UserCacheTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.AuthRequests)

	assert.Equal(t, "account-emails", cfg.Kafka.Topic)
	assert.Equal(t, "contactly-email-workers", cfg.Kafka.GroupID)
	assert.Equal(t, 3, cfg.Kafka.Workers)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_EXPIRES_IN", "600")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, 10*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Contains(t, cfg.Database.DSN, "host=db.internal")
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestGetAPIBasePath(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
}

func TestModeHelpers(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}
