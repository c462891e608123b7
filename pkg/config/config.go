package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store backends for the enrollment store.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig
	CORS      CORSConfig
	Log       LogConfig
	Booking   BookingConfig
	Cache     CacheConfig
	Wompi     WompiConfig
	RateLimit RateLimitConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// AdminConfig holds the single operator account for the admin endpoints.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// BookingConfig governs the slot catalog and eligibility rules.
type BookingConfig struct {
	Timezone      string
	AdvanceHours  int
	GroupCapacity int
	Store         string
}

// CacheConfig tunes the schedule listing cache.
type CacheConfig struct {
	Enabled     bool
	ScheduleTTL time.Duration
}

// WompiConfig holds payment provider credentials and endpoints.
type WompiConfig struct {
	PublicKey       string
	PrivateKey      string
	EventsSecret    string
	IntegrityKey    string
	APIBaseURL      string
	CheckoutBaseURL string
	AppURL          string
	LinkExpiration  time.Duration
}

// RateLimitConfig bounds the payment-link endpoint per client IP.
type RateLimitConfig struct {
	PaymentPerMinute int
	PaymentBurst     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.Admin = AdminConfig{
		Email:        v.GetString("ADMIN_EMAIL"),
		PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Booking = BookingConfig{
		Timezone:      v.GetString("BOOKING_TIMEZONE"),
		AdvanceHours:  v.GetInt("BOOKING_ADVANCE_HOURS"),
		GroupCapacity: v.GetInt("BOOKING_GROUP_CAPACITY"),
		Store:         v.GetString("BOOKING_STORE"),
	}

	cfg.Cache = CacheConfig{
		Enabled:     v.GetBool("ENABLE_CACHE"),
		ScheduleTTL: parseDuration(v.GetString("SCHEDULE_CACHE_TTL"), time.Minute),
	}

	cfg.Wompi = WompiConfig{
		PublicKey:       v.GetString("WOMPI_PUBLIC_KEY"),
		PrivateKey:      v.GetString("WOMPI_PRIVATE_KEY"),
		EventsSecret:    v.GetString("WOMPI_EVENTS_SECRET"),
		IntegrityKey:    v.GetString("WOMPI_INTEGRITY_KEY"),
		APIBaseURL:      v.GetString("WOMPI_API_BASE_URL"),
		CheckoutBaseURL: v.GetString("WOMPI_CHECKOUT_BASE_URL"),
		AppURL:          v.GetString("APP_URL"),
		LinkExpiration:  parseDuration(v.GetString("WOMPI_LINK_EXPIRATION"), 30*time.Minute),
	}

	cfg.RateLimit = RateLimitConfig{
		PaymentPerMinute: v.GetInt("PAYMENT_RATE_LIMIT"),
		PaymentBurst:     v.GetInt("PAYMENT_RATE_BURST"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "tu_wellness")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("BOOKING_TIMEZONE", "America/Bogota")
	v.SetDefault("BOOKING_ADVANCE_HOURS", 2)
	v.SetDefault("BOOKING_GROUP_CAPACITY", 8)
	v.SetDefault("BOOKING_STORE", StoreMemory)

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("SCHEDULE_CACHE_TTL", "1m")

	v.SetDefault("WOMPI_PUBLIC_KEY", "")
	v.SetDefault("WOMPI_PRIVATE_KEY", "")
	v.SetDefault("WOMPI_EVENTS_SECRET", "")
	v.SetDefault("WOMPI_INTEGRITY_KEY", "")
	v.SetDefault("WOMPI_API_BASE_URL", "https://sandbox.wompi.co/v1")
	v.SetDefault("WOMPI_CHECKOUT_BASE_URL", "https://checkout.wompi.co/tu-tataumana")
	v.SetDefault("APP_URL", "https://tu-tataumana.vercel.app")
	v.SetDefault("WOMPI_LINK_EXPIRATION", "30m")

	v.SetDefault("PAYMENT_RATE_LIMIT", 10)
	v.SetDefault("PAYMENT_RATE_BURST", 10)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
