package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

const (
	AuthProviderJWT    = "jwt"
	AuthProviderGoogle = "google"
)

type Config struct {
	Port        string
	DatabaseURL string

	AuthProvider   string
	JWTSecret      string
	JWTAudience    string
	GoogleClientID string

	RedisURL     string
	PollCacheTTL time.Duration

	RabbitMQURL   string
	RabbitMQQueue string

	AllowedOrigins []string
	RequestTimeout time.Duration

	LogLevel  string
	LogPretty bool
}

// Load reads a .env file when present and then the process environment.
// Redis and RabbitMQ are optional; leaving their URLs empty disables the
// cache and the vote event publisher.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv and validates it. All problems are
// reported together.
func FromEnv(getenv func(string) string) (*Config, error) {
	var result *multierror.Error

	cfg := &Config{
		Port:           withDefault(getenv("PORT"), "8080"),
		DatabaseURL:    DatabaseURL(getenv),
		AuthProvider:   strings.ToLower(withDefault(getenv("AUTH_PROVIDER"), AuthProviderJWT)),
		JWTSecret:      getenv("JWT_SECRET"),
		JWTAudience:    getenv("JWT_AUDIENCE"),
		GoogleClientID: getenv("GOOGLE_CLIENT_ID"),
		RedisURL:       getenv("REDIS_URL"),
		RabbitMQURL:    getenv("RABBITMQ_URL"),
		RabbitMQQueue:  withDefault(getenv("RABBITMQ_QUEUE"), "poll_votes"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS")),
		LogLevel:       withDefault(getenv("LOG_LEVEL"), "info"),
	}

	if cfg.DatabaseURL == "" {
		result = multierror.Append(result, errors.New("DATABASE_URL or POSTGRES_DB, POSTGRES_USER and POSTGRES_HOST must be set"))
	}

	switch cfg.AuthProvider {
	case AuthProviderJWT:
		if cfg.JWTSecret == "" {
			result = multierror.Append(result, errors.New("JWT_SECRET is required when AUTH_PROVIDER=jwt"))
		}
	case AuthProviderGoogle:
		if cfg.GoogleClientID == "" {
			result = multierror.Append(result, errors.New("GOOGLE_CLIENT_ID is required when AUTH_PROVIDER=google"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.AuthProvider))
	}

	ttl, err := time.ParseDuration(withDefault(getenv("POLL_CACHE_TTL"), "30s"))
	if err != nil || ttl <= 0 {
		result = multierror.Append(result, fmt.Errorf("invalid POLL_CACHE_TTL %q", getenv("POLL_CACHE_TTL")))
	}
	cfg.PollCacheTTL = ttl

	timeout, err := time.ParseDuration(withDefault(getenv("REQUEST_TIMEOUT"), "10s"))
	if err != nil || timeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("invalid REQUEST_TIMEOUT %q", getenv("REQUEST_TIMEOUT")))
	}
	cfg.RequestTimeout = timeout

	if raw := getenv("LOG_PRETTY"); raw != "" {
		pretty, err := strconv.ParseBool(raw)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid LOG_PRETTY %q", raw))
		}
		cfg.LogPretty = pretty
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DatabaseURL returns DATABASE_URL, or a URL assembled from the POSTGRES_*
// variables, or "" when neither is configured.
func DatabaseURL(getenv func(string) string) string {
	if dsn := getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	dbName, user, password, host, port := getenv("POSTGRES_DB"), getenv("POSTGRES_USER"), getenv("POSTGRES_PASSWORD"), getenv("POSTGRES_HOST"), getenv("POSTGRES_PORT")
	if dbName == "" || user == "" || host == "" {
		return ""
	}
	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     host + ":" + port,
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + withDefault(getenv("POSTGRES_SSLMODE"), "disable"),
	}
	return u.String()
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
