package config

import (
	"os"
)

// ServerlessDatabasePath is the only writable location inside a Lambda execution environment
const ServerlessDatabasePath = "/tmp/app.db"

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Version      string
	Region       string
	Stage        string
}

// DetectServerless reads the Lambda runtime environment
func DetectServerless() *ServerlessConfig {
	return &ServerlessConfig{
		IsLambda:     isRunningInLambda(),
		FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Version:      os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		Region:       os.Getenv("AWS_REGION"),
		Stage:        GetEnv("STAGE", "dev"),
	}
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// IsServerlessMode returns true if running in serverless mode
func (c *Config) IsServerlessMode() bool {
	return c.Serverless != nil && c.Serverless.IsLambda
}

// DeploymentMode returns the current deployment mode
func (c *Config) DeploymentMode() string {
	if c.IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptForServerless modifies configuration for the Lambda execution environment.
// The deployment package is read-only, so the database moves to /tmp.
// CloudWatch gets one JSON object per log line, and the environment defaults
// to production so development routes stay out of deployed functions.
func AdaptForServerless(config *Config) *Config {
	if !config.IsServerlessMode() {
		return config
	}

	if config.Database.Path == DefaultDatabasePath {
		config.Database.Path = ServerlessDatabasePath
	}

	if os.Getenv("LOG_FORMAT") == "" {
		config.LogFormat = "json"
	}

	if os.Getenv("ENVIRONMENT") == "" {
		config.Environment = "production"
	}

	return config
}

// LoadForLambda returns configuration adapted to the current deployment mode
func LoadForLambda() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptForServerless(config), nil
}
