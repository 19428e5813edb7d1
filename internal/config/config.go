package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default values for the process server bootstrap
const (
	DefaultPort = 4000
	DefaultHost = "localhost"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	LogLevel    string
	LogFormat   string
	Server      ServerConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	JWT         JWTConfig
	Serverless  *ServerlessConfig
}

// ServerConfig holds the listening address of the process server
type ServerConfig struct {
	Host              string
	Port              int
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration
}

// Address returns the host:port pair the server binds to
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// CORSConfig holds cross-origin policy settings
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds token bucket settings for the rate limiter
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	MaxBodyBytes      int64
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret      string
	ExpiryHours int
	Issuer      string
}

// Enabled reports whether bearer authentication is configured
func (j JWTConfig) Enabled() bool {
	return j.Secret != ""
}

// IsProduction reports whether the application runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment reports whether the application runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", strconv.Itoa(DefaultPort))
	v.SetDefault("HOST", DefaultHost)
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("READ_HEADER_TIMEOUT", "10s")
	v.SetDefault("DB_PATH", DefaultDatabasePath)
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("DB_MAX_IDLE_CONNS", 1)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("JWT_ISSUER", "serverless-gin-api")

	port, err := parsePort(v.GetString("PORT"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFormat:   v.GetString("LOG_FORMAT"),
		Server: ServerConfig{
			Host:              strings.TrimSpace(v.GetString("HOST")),
			Port:              port,
			ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
			ReadHeaderTimeout: v.GetDuration("READ_HEADER_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Path:            v.GetString("DB_PATH"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
			MaxBodyBytes:      v.GetInt64("MAX_BODY_BYTES"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
			Issuer:      v.GetString("JWT_ISSUER"),
		},
		Serverless: DetectServerless(),
	}

	if config.Server.Host == "" {
		config.Server.Host = DefaultHost
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the loaded configuration for values the application cannot run with
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 0 and 65535", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1")
	}
	if c.RateLimit.MaxBodyBytes < 1 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1")
	}
	return c.Database.Validate()
}

func parsePort(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid PORT %q: must be numeric", raw)
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("invalid PORT %d: must be between 0 and 65535", port)
	}
	return port, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
