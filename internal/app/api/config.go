package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Apurer/go-gin-users-api/internal/domains/users/domain"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string
	ServiceName string
	Environment string
	LogLevel    string
	GinMode     string

	UsersSeedFile     string
	UsersUpdatePolicy domain.UpdatePolicy

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	ShutdownTimeout time.Duration
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// RateLimitEnabled reports whether per-client throttling is on.
func (c Config) RateLimitEnabled() bool {
	return c.RateLimitRPS > 0
}

// LoadConfig reads a .env file when one exists, then environment variables,
// applies defaults, and validates. All problems are reported together.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var errs []error
	cfg := Config{
		Port:               envDefault("PORT", "5001"),
		ServiceName:        envDefault("SERVICE_NAME", "users-api"),
		Environment:        envDefault("ENVIRONMENT", "local"),
		LogLevel:           envDefault("LOG_LEVEL", "info"),
		GinMode:            envDefault("GIN_MODE", gin.ReleaseMode),
		UsersSeedFile:      strings.TrimSpace(os.Getenv("USERS_SEED_FILE")),
		UsersUpdatePolicy:  domain.IgnoreEmpty,
		CORSAllowedOrigins: splitList(envDefault("CORS_ALLOWED_ORIGINS", "*")),
		RateLimitBurst:     20,
		ShutdownTimeout:    10 * time.Second,
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.Port))
	}
	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE must be one of debug, release, test, got %q", cfg.GinMode))
	}
	if raw := strings.TrimSpace(os.Getenv("USERS_PATCH_APPLY_EMPTY")); raw != "" {
		applyEmpty, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("USERS_PATCH_APPLY_EMPTY must be a boolean, got %q", raw))
		} else if applyEmpty {
			cfg.UsersUpdatePolicy = domain.ApplyEmpty
		}
	}
	if raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be a non-negative number, got %q", raw))
		} else {
			cfg.RateLimitRPS = rps
		}
	}
	if raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); raw != "" {
		burst, err := strconv.Atoi(raw)
		if err != nil || burst <= 0 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer, got %q", raw))
		} else {
			cfg.RateLimitBurst = burst
		}
	}
	if raw := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be a positive duration, got %q", raw))
		} else {
			cfg.ShutdownTimeout = timeout
		}
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin"))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
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
