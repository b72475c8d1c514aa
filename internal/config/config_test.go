package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTOML = `
[server]
http_port = 9090

[database]
host = "db.local"
user = "shop"
dbname = "shop"

[sms]
enabled = true
fallback_number = "+639170000000"

[kafka]
enabled = true
brokers = ["kafka:9092"]

[booking]
code_max_attempts = 5
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadWithEnv(t *testing.T) {
	t.Run("toml values, defaults and env secrets", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "config.toml", validTOML)
		t.Setenv(EnvSemaphoreAPIKey, "sema-key")
		t.Setenv(EnvDBPassword, "secret")

		cfg, err := LoadWithEnv(path, "")
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.HTTPPort)
		assert.Equal(t, 15, cfg.Server.ReadTimeout)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "secret", cfg.Database.Password)
		assert.Equal(t, "sema-key", cfg.SMS.APIKey)
		assert.Equal(t, "+639170000000", cfg.SMS.FallbackNumber)
		assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, "booking-events", cfg.Kafka.BookingTopic)
		assert.Equal(t, 2, cfg.Kafka.PublishTimeout)
		assert.Equal(t, 5, cfg.Booking.CodeMaxAttempts)
		assert.Equal(t, 300, cfg.Redis.DashboardTTL)
	})

	t.Run("secrets from .env file", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "config.toml", validTOML)
		envPath := writeFile(t, dir, ".env", "SEMAPHORE_API_KEY=from-dotenv\nREDIS_PASSWORD=redis-pass\n")
		t.Setenv(EnvSemaphoreAPIKey, "")
		t.Setenv(EnvRedisPassword, "")
		// godotenv не перезаписывает уже заданные переменные, поэтому очищаем их полностью
		require.NoError(t, os.Unsetenv(EnvSemaphoreAPIKey))
		require.NoError(t, os.Unsetenv(EnvRedisPassword))

		cfg, err := LoadWithEnv(path, envPath)
		require.NoError(t, err)
		assert.Equal(t, "from-dotenv", cfg.SMS.APIKey)
		assert.Equal(t, "redis-pass", cfg.Redis.Password)
	})

	t.Run("missing .env file is ignored", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "config.toml", validTOML)
		t.Setenv(EnvSemaphoreAPIKey, "key")

		_, err := LoadWithEnv(path, filepath.Join(dir, "absent.env"))
		require.NoError(t, err)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.toml"), "")
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "missing database host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "database.host is required",
		},
		{
			name:    "missing database user",
			mutate:  func(c *Config) { c.Database.User = "" },
			wantErr: "database.user is required",
		},
		{
			name:    "zero attempts",
			mutate:  func(c *Config) { c.Booking.CodeMaxAttempts = 0 },
			wantErr: "booking.code_max_attempts must be positive",
		},
		{
			name:    "sms without api key",
			mutate:  func(c *Config) { c.SMS.Enabled = true },
			wantErr: "SEMAPHORE_API_KEY is required",
		},
		{
			name:    "kafka without brokers",
			mutate:  func(c *Config) { c.Kafka.Enabled = true },
			wantErr: "kafka.brokers is required",
		},
		{
			name: "kafka without publish timeout",
			mutate: func(c *Config) {
				c.Kafka.Enabled = true
				c.Kafka.Brokers = []string{"kafka:9092"}
				c.Kafka.PublishTimeout = 0
			},
			wantErr: "kafka.publish_timeout must be positive",
		},
		{
			name: "notification timeouts exceed write timeout",
			mutate: func(c *Config) {
				c.SMS.Enabled = true
				c.SMS.APIKey = "key"
				c.SMS.Timeout = 10
				c.Kafka.Enabled = true
				c.Kafka.Brokers = []string{"kafka:9092"}
				c.Kafka.PublishTimeout = 5
				c.Server.WriteTimeout = 15
			},
			wantErr: "must be less than server.write_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Database.Host = "localhost"
			cfg.Database.User = "shop"
			cfg.Database.DBName = "shop"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "localhost", Port: 5432, User: "shop", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user=shop dbname=shop sslmode=disable", d.DSN())

	d.Password = "pw"
	assert.Contains(t, d.DSN(), "password=pw")
}
