package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, если конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Logs     LogsConfig     `toml:"logs"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Contact  ContactConfig  `toml:"contact"`
	Auth     AuthConfig     `toml:"auth"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type ServerConfig struct {
	HTTPPort           int      `toml:"http_port"`
	ReadTimeout        int      `toml:"read_timeout"`     // секунды
	WriteTimeout       int      `toml:"write_timeout"`    // секунды
	IdleTimeout        int      `toml:"idle_timeout"`     // секунды
	ShutdownTimeout    int      `toml:"shutdown_timeout"` // секунды
	StaticDir          string   `toml:"static_dir"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	TrustedProxies     []string `toml:"trusted_proxies"` // IP или CIDR; только от них учитывается X-Forwarded-For
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения в формате postgres:// для golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Enabled               bool   `toml:"enabled"`
	Addr                  string `toml:"addr"`
	Password              string `toml:"password"`
	DB                    int    `toml:"db"`
	CatalogTTLSeconds     int    `toml:"catalog_ttl_seconds"`
	RateLimitPerMinute    int    `toml:"rate_limit_per_minute"` // 0 = без ограничения
	IdempotencyTTLSeconds int    `toml:"idempotency_ttl_seconds"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BookingConfig struct {
	Timezone              string `toml:"timezone"`
	HoldMinutes           int    `toml:"hold_minutes"`
	DefaultPaymentLink    string `toml:"default_payment_link"`
	ReaperEnabled         bool   `toml:"reaper_enabled"`
	ReaperIntervalSeconds int    `toml:"reaper_interval_seconds"`
	ReaperReleasePending  bool   `toml:"reaper_release_pending"`
}

// HoldDuration срок удержания слота после создания бронирования
func (c BookingConfig) HoldDuration() time.Duration {
	return time.Duration(c.HoldMinutes) * time.Minute
}

// Location часовой пояс площадок
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type ContactConfig struct {
	DefaultWhatsApp string `toml:"default_whatsapp"`
	DefaultMessage  string `toml:"default_message"`
}

type AuthConfig struct {
	JWTSecret      string `toml:"jwt_secret"`
	ProviderURL    string `toml:"provider_url"`
	ProviderAPIKey string `toml:"provider_api_key"`
	Timeout        int    `toml:"timeout"` // секунды
}

// Load читает TOML-файл, подгружает .env (если есть) и применяет переменные окружения
func Load(path string) (*Config, error) {
	// .env необязателен: в production секреты приходят из окружения
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"DB_HOST":               &c.Database.Host,
		"DB_USER":               &c.Database.User,
		"DB_PASSWORD":           &c.Database.Password,
		"DB_NAME":               &c.Database.DBName,
		"REDIS_ADDR":            &c.Redis.Addr,
		"REDIS_PASSWORD":        &c.Redis.Password,
		"JWT_SECRET":            &c.Auth.JWTSecret,
		"AUTH_PROVIDER_URL":     &c.Auth.ProviderURL,
		"AUTH_PROVIDER_API_KEY": &c.Auth.ProviderAPIKey,
	}
	for key, target := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*target = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.CatalogTTLSeconds == 0 {
		c.Redis.CatalogTTLSeconds = 300
	}
	if c.Redis.IdempotencyTTLSeconds == 0 {
		c.Redis.IdempotencyTTLSeconds = 24 * 60 * 60
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "court-booking"
	}

	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "America/Santiago"
	}
	if c.Booking.HoldMinutes == 0 {
		c.Booking.HoldMinutes = 10
	}
	if c.Booking.DefaultPaymentLink == "" {
		c.Booking.DefaultPaymentLink = "https://webpay.cl"
	}
	if c.Booking.ReaperIntervalSeconds == 0 {
		c.Booking.ReaperIntervalSeconds = 60
	}

	if c.Contact.DefaultWhatsApp == "" {
		c.Contact.DefaultWhatsApp = "+56912345678"
	}
	if c.Contact.DefaultMessage == "" {
		c.Contact.DefaultMessage = "Hola! Me gustaría hacer una reserva en su cancha."
	}

	if c.Auth.Timeout == 0 {
		c.Auth.Timeout = 5
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	if _, err := c.Booking.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("booking.timezone %q: %v", c.Booking.Timezone, err))
	}
	if c.Booking.HoldMinutes <= 0 {
		problems = append(problems, "booking.hold_minutes must be positive")
	}
	if c.Booking.ReaperIntervalSeconds <= 0 {
		problems = append(problems, "booking.reaper_interval_seconds must be positive")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Redis.RateLimitPerMinute < 0 {
		problems = append(problems, "redis.rate_limit_per_minute must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
