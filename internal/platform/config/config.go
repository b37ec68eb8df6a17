package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

const (
	defaultJWTSecret  = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTExpiry  = 12 * time.Hour
	defaultJWTIssuer  = "credence-backend"
	defaultLoginLimit = "5-M"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	LogLevel          slog.Level
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Session cookie carrying the JWT
	SessionCookieName   string
	SessionCookieSecure bool

	// FrontendBaseURL is the only origin allowed by CORS
	FrontendBaseURL string
	LoginRateLimit  limiter.Rate

	// Event publishing; an empty AMQPURL disables it
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("SESSION_COOKIE_NAME", "credence_session")
	v.SetDefault("SESSION_COOKIE_SECURE", true)
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("LOGIN_RATE_LIMIT", defaultLoginLimit)
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "credence.events")
	v.SetDefault("AMQP_ROUTING_KEY", "credence.state")
	v.SetDefault("POSTHOG_API_KEY", "")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		SessionCookieName:   v.GetString("SESSION_COOKIE_NAME"),
		SessionCookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		FrontendBaseURL:     strings.TrimRight(v.GetString("FRONTEND_BASE_URL"), "/"),
		AMQPURL:             v.GetString("AMQP_URL"),
		AMQPExchange:        v.GetString("AMQP_EXCHANGE"),
		AMQPRoutingKey:      v.GetString("AMQP_ROUTING_KEY"),
		PosthogAPIKey:       v.GetString("POSTHOG_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		slog.Warn("JWT_SECRET not set, using default insecure key")
	}
	if cfg.FrontendBaseURL == "" {
		cfg.FrontendBaseURL = "http://localhost:3000"
		slog.Warn("FRONTEND_BASE_URL is empty, allowing only the local frontend")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiry <= 0 {
		jwtExpiry = defaultJWTExpiry
		slog.Warn("Invalid value for JWT_EXPIRY_DURATION, using default",
			slog.String("value", jwtExpiryStr), slog.Duration("default", jwtExpiry))
	}
	cfg.JWTExpiryDuration = jwtExpiry

	loginLimitStr := v.GetString("LOGIN_RATE_LIMIT")
	rate, err := limiter.NewRateFromFormatted(loginLimitStr)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted(defaultLoginLimit)
		slog.Warn("Invalid value for LOGIN_RATE_LIMIT, using default",
			slog.String("value", loginLimitStr), slog.String("default", defaultLoginLimit))
	}
	cfg.LoginRateLimit = rate

	levelStr := v.GetString("LOG_LEVEL")
	if err := cfg.LogLevel.UnmarshalText([]byte(levelStr)); err != nil {
		cfg.LogLevel = slog.LevelInfo
		slog.Warn("Invalid value for LOG_LEVEL, using info", slog.String("value", levelStr))
	}

	return cfg, nil
}
