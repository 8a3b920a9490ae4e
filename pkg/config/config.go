package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	API       APIConfig
	Cookie    CookieConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	OTEL      OTELConfig
	Log       LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// APIConfig holds the HBnB REST API location
type APIConfig struct {
	BaseURL string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
}

// CookieConfig holds session cookie attributes
type CookieConfig struct {
	Path   string
	Secure bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig holds page view snapshot settings
type CacheConfig struct {
	ViewTTL  time.Duration
	MaxViews int
}

// RateLimitConfig holds login throttling settings
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
	// TrustedProxies may set X-Forwarded-For; empty trusts no one.
	TrustedProxies []netip.Prefix
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Env   string
	Level string
}

// Load loads configuration from an optional .env file and the environment
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8000),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("HBNB_API_URL", "http://localhost:5000/api/v1"), "/"),
			Timeout: getEnvAsDuration("HBNB_API_TIMEOUT", 0),
		},
		Cookie: CookieConfig{
			Path:   getEnv("COOKIE_PATH", "/"),
			Secure: getEnvAsBool("COOKIE_SECURE", true),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			ViewTTL:  getEnvAsDuration("VIEW_CACHE_TTL", 30*time.Minute),
			MaxViews: getEnvAsInt("VIEW_CACHE_MAX", 10000),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),
			LoginBurst:     getEnvAsInt("LOGIN_RATE_BURST", 5),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "hbnb-web"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Log: LogConfig{
			Env:   getEnv("APP_ENV", "development"),
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	proxies, err := parsePrefixes(getEnv("TRUSTED_PROXIES", ""))
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	cfg.RateLimit.TrustedProxies = proxies

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("HBNB_API_URL must not be empty")
	}
	if cfg.Cache.MaxViews <= 0 {
		return nil, fmt.Errorf("VIEW_CACHE_MAX must be positive, got %d", cfg.Cache.MaxViews)
	}

	return cfg, nil
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// parsePrefixes reads a comma-separated list of CIDRs or single addresses
func parsePrefixes(value string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, err
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, err
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
