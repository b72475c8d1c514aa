package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	SMS      SMSConfig      `toml:"sms"`
	Redis    RedisConfig    `toml:"redis"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SMSConfig настройки SMS шлюза Semaphore
type SMSConfig struct {
	Enabled        bool   `toml:"enabled"`
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	SenderName     string `toml:"sender_name"`
	FallbackNumber string `toml:"fallback_number"`
	Signature      string `toml:"signature"`
	Timeout        int    `toml:"timeout"`
}

// RedisConfig настройки кэша дашборда
type RedisConfig struct {
	Enabled      bool   `toml:"enabled"`
	Addr         string `toml:"addr"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	DashboardTTL int    `toml:"dashboard_ttl"`
}

// KafkaConfig настройки публикации событий бронирований
type KafkaConfig struct {
	Enabled        bool     `toml:"enabled"`
	Brokers        []string `toml:"brokers"`
	BookingTopic   string   `toml:"booking_topic"`
	PublishTimeout int      `toml:"publish_timeout"` // секунды, ограничение на одну публикацию
}

// BookingConfig настройки бронирований
type BookingConfig struct {
	CodeMaxAttempts int `toml:"code_max_attempts"`
}

// Переменные окружения с секретами
const (
	EnvDBPassword      = "DB_PASSWORD"
	EnvSemaphoreAPIKey = "SEMAPHORE_API_KEY"
	EnvRedisPassword   = "REDIS_PASSWORD"
)

// Load загружает конфигурацию из TOML файла и секреты из окружения
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, ".env")
}

// LoadWithEnv загружает конфигурацию из TOML файла, затем накладывает секреты из .env файла
// (если он есть) и переменных окружения
func LoadWithEnv(path, envFile string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-shopadmin",
		},
		SMS: SMSConfig{
			BaseURL:    "https://api.semaphore.co/api/v4",
			SenderName: "SMCShop",
			Signature:  "SMC Shop",
			Timeout:    10,
		},
		Redis: RedisConfig{
			Addr:         "localhost:6379",
			DashboardTTL: 300,
		},
		Kafka: KafkaConfig{
			BookingTopic:   "booking-events",
			PublishTimeout: 2,
		},
		Booking: BookingConfig{
			CodeMaxAttempts: 10,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvSemaphoreAPIKey); v != "" {
		c.SMS.APIKey = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		c.Redis.Password = v
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Booking.CodeMaxAttempts <= 0 {
		return fmt.Errorf("booking.code_max_attempts must be positive")
	}
	if c.SMS.Enabled && c.SMS.APIKey == "" {
		return fmt.Errorf("%s is required when sms is enabled", EnvSemaphoreAPIKey)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.PublishTimeout <= 0 {
		return fmt.Errorf("kafka.publish_timeout must be positive when kafka is enabled")
	}
	// Уведомления отправляются синхронно в обработчике: SMS и публикация должны уложиться в write_timeout
	if budget := c.notificationBudget(); budget >= c.Server.WriteTimeout {
		return fmt.Errorf("sms.timeout + kafka.publish_timeout (%ds) must be less than server.write_timeout (%ds)", budget, c.Server.WriteTimeout)
	}
	if c.Redis.Enabled && c.Redis.DashboardTTL <= 0 {
		return fmt.Errorf("redis.dashboard_ttl must be positive when redis is enabled")
	}
	return nil
}

func (c *Config) notificationBudget() int {
	budget := 0
	if c.SMS.Enabled {
		budget += c.SMS.Timeout
	}
	if c.Kafka.Enabled {
		budget += c.Kafka.PublishTimeout
	}
	return budget
}

// DSN строка подключения к PostgreSQL для lib/pq
func (d DatabaseConfig) DSN() string {
	parts := []string{
		fmt.Sprintf("host=%s", d.Host),
		fmt.Sprintf("port=%d", d.Port),
		fmt.Sprintf("user=%s", d.User),
		fmt.Sprintf("dbname=%s", d.DBName),
		fmt.Sprintf("sslmode=%s", d.SSLMode),
	}
	if d.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", d.Password))
	}
	return strings.Join(parts, " ")
}
