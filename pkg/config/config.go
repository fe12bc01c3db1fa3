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

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	SiteURL   string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Payment  PaymentConfig
	Discord  DiscordConfig
	Reminder ReminderConfig
	Contact  ContactConfig
	Sitemap  SitemapConfig
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
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// PaymentConfig holds Midtrans Snap credentials and redirect targets.
type PaymentConfig struct {
	ServerKey  string
	Production bool
	SuccessURL string
	CancelURL  string
}

// DiscordConfig covers both the notification webhook and the OAuth linkage.
type DiscordConfig struct {
	WebhookURL   string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	StateSecret  string
	StateTTL     time.Duration
}

// ReminderConfig tunes the booking reminder scheduler.
type ReminderConfig struct {
	Enabled   bool
	Interval  time.Duration
	Tolerance time.Duration
}

// ContactConfig bounds the public contact form.
type ContactConfig struct {
	RateLimit       int
	RateLimitWindow time.Duration
}

// SitemapConfig controls sitemap revalidation.
type SitemapConfig struct {
	CacheTTL time.Duration
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
	cfg.SiteURL = strings.TrimRight(v.GetString("SITE_URL"), "/")

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
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Payment = PaymentConfig{
		ServerKey:  v.GetString("MIDTRANS_SERVER_KEY"),
		Production: v.GetBool("MIDTRANS_PRODUCTION"),
		SuccessURL: v.GetString("PAYMENT_SUCCESS_URL"),
		CancelURL:  v.GetString("PAYMENT_CANCEL_URL"),
	}

	cfg.Discord = DiscordConfig{
		WebhookURL:   v.GetString("DISCORD_WEBHOOK_URL"),
		ClientID:     v.GetString("DISCORD_CLIENT_ID"),
		ClientSecret: v.GetString("DISCORD_CLIENT_SECRET"),
		RedirectURL:  v.GetString("DISCORD_REDIRECT_URL"),
		StateSecret:  v.GetString("DISCORD_STATE_SECRET"),
		StateTTL:     parseDuration(v.GetString("DISCORD_STATE_TTL"), 10*time.Minute),
	}

	cfg.Reminder = ReminderConfig{
		Enabled:   v.GetBool("ENABLE_REMINDERS"),
		Interval:  parseDuration(v.GetString("REMINDER_INTERVAL"), 5*time.Minute),
		Tolerance: parseDuration(v.GetString("REMINDER_TOLERANCE"), 5*time.Minute),
	}

	cfg.Contact = ContactConfig{
		RateLimit:       v.GetInt("CONTACT_RATE_LIMIT"),
		RateLimitWindow: parseDuration(v.GetString("CONTACT_RATE_WINDOW"), time.Hour),
	}

	cfg.Sitemap = SitemapConfig{
		CacheTTL: parseDuration(v.GetString("SITEMAP_CACHE_TTL"), time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("SITE_URL", "http://localhost:3000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "coaching_site")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("MIDTRANS_SERVER_KEY", "")
	v.SetDefault("MIDTRANS_PRODUCTION", false)
	v.SetDefault("PAYMENT_SUCCESS_URL", "http://localhost:3000/checkout/success")
	v.SetDefault("PAYMENT_CANCEL_URL", "http://localhost:3000/checkout/cancelled")

	v.SetDefault("DISCORD_WEBHOOK_URL", "")
	v.SetDefault("DISCORD_CLIENT_ID", "")
	v.SetDefault("DISCORD_CLIENT_SECRET", "")
	v.SetDefault("DISCORD_REDIRECT_URL", "http://localhost:8080/api/v1/discord/callback")
	v.SetDefault("DISCORD_STATE_SECRET", "dev_state_secret")
	v.SetDefault("DISCORD_STATE_TTL", "10m")

	v.SetDefault("ENABLE_REMINDERS", true)
	v.SetDefault("REMINDER_INTERVAL", "5m")
	v.SetDefault("REMINDER_TOLERANCE", "5m")

	v.SetDefault("CONTACT_RATE_LIMIT", 5)
	v.SetDefault("CONTACT_RATE_WINDOW", "1h")

	v.SetDefault("SITEMAP_CACHE_TTL", "1h")
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
