package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// clearEnv resets every variable Load reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "HOST", "ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT", "DB_PATH",
		"JWT_SECRET", "CORS_ALLOWED_ORIGINS", "AWS_LAMBDA_FUNCTION_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if got := cfg.Server.Address(); got != "localhost:4000" {
		t.Errorf("Address() = %s, want localhost:4000", got)
	}
	if cfg.Database.Path != DefaultDatabasePath {
		t.Errorf("Database.Path = %s, want %s", cfg.Database.Path, DefaultDatabasePath)
	}
	if cfg.DeploymentMode() != "server" {
		t.Errorf("DeploymentMode() = %s, want server", cfg.DeploymentMode())
	}
	if !cfg.IsDevelopment() {
		t.Errorf("Environment = %s, want development outside Lambda", cfg.Environment)
	}
	if cfg.JWT.Enabled() {
		t.Error("JWT should be disabled without a secret")
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadServerAddress(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		host    string
		want    string
		wantErr bool
	}{
		{name: "explicit", port: "8080", host: "0.0.0.0", want: "0.0.0.0:8080"},
		{name: "blank host", port: "8080", host: "   ", want: "localhost:8080"},
		{name: "padded port", port: " 9000 ", host: "", want: "localhost:9000"},
		{name: "non numeric port", port: "http", wantErr: true},
		{name: "negative port", port: "-1", wantErr: true},
		{name: "port out of range", port: "70000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", tt.port)
			t.Setenv("HOST", tt.host)

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for PORT=%q", tt.port)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if got := cfg.Server.Address(); got != tt.want {
				t.Errorf("Address() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLoadForLambda(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "hello-fn")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := LoadForLambda()
	if err != nil {
		t.Fatalf("LoadForLambda() failed: %v", err)
	}

	if cfg.DeploymentMode() != "serverless" {
		t.Errorf("DeploymentMode() = %s, want serverless", cfg.DeploymentMode())
	}
	if cfg.Database.Path != ServerlessDatabasePath {
		t.Errorf("Database.Path = %s, want %s", cfg.Database.Path, ServerlessDatabasePath)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", cfg.LogFormat)
	}
	if cfg.Environment != "production" || cfg.IsDevelopment() {
		t.Errorf("Environment = %s, want production", cfg.Environment)
	}
	if cfg.Serverless.FunctionName != "hello-fn" || cfg.Serverless.Region != "eu-west-1" {
		t.Errorf("Serverless = %+v", cfg.Serverless)
	}
}

func TestAdaptForServerlessKeepsExplicitSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "hello-fn")
	t.Setenv("DB_PATH", "/tmp/custom.db")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("ENVIRONMENT", "staging")

	cfg, err := LoadForLambda()
	if err != nil {
		t.Fatalf("LoadForLambda() failed: %v", err)
	}
	if cfg.Database.Path != "/tmp/custom.db" {
		t.Errorf("Database.Path = %s, want /tmp/custom.db", cfg.Database.Path)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %s, want text", cfg.LogFormat)
	}
	if cfg.Environment != "staging" {
		t.Errorf("Environment = %s, want staging", cfg.Environment)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }},
		{name: "zero rate", mutate: func(c *Config) { c.RateLimit.RequestsPerSecond = 0 }},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimit.Burst = 0 }},
		{name: "zero body limit", mutate: func(c *Config) { c.RateLimit.MaxBodyBytes = 0 }},
		{name: "empty database path", mutate: func(c *Config) { c.Database.Path = "" }},
		{name: "no connections", mutate: func(c *Config) { c.Database.MaxOpenConns = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.example , ,https://b.example,")
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitList() = %v, want %v", got, want)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "text info", level: "info", format: "text", wantLevel: logrus.InfoLevel},
		{name: "json debug", level: "debug", format: "JSON", wantLevel: logrus.DebugLevel, wantJSON: true},
		{name: "unknown level", level: "chatty", format: "", wantLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(&Config{LogLevel: tt.level, LogFormat: tt.format})

			if logger.GetLevel() != tt.wantLevel {
				t.Errorf("Level = %v, want %v", logger.GetLevel(), tt.wantLevel)
			}
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			if isJSON != tt.wantJSON {
				t.Errorf("JSON formatter = %t, want %t", isJSON, tt.wantJSON)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SERVERLESS_GIN_API_TEST", "")
	if got := GetEnv("SERVERLESS_GIN_API_TEST", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %s, want fallback", got)
	}
	t.Setenv("SERVERLESS_GIN_API_TEST", "set")
	if got := GetEnv("SERVERLESS_GIN_API_TEST", "fallback"); !strings.EqualFold(got, "set") {
		t.Errorf("GetEnv() = %s, want set", got)
	}
}
