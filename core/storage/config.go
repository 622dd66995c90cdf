package storage

import (
	"os"

	"objectstore/core/utils"
)

// Environment variables consumed by Resolve. Explicit options take
// precedence over these; these take precedence over built-in defaults.
const (
	EnvEndpoint  = "MINIO_ENDPOINT"
	EnvAccessKey = "MINIO_ACCESS_KEY"
	EnvSecretKey = "MINIO_SECRET_KEY"
	EnvSecure    = "MINIO_SECURE"
	EnvRegion    = "MINIO_REGION"
)

// Config holds configuration for the storage client.
type Config struct {
	// Endpoint is the host:port of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Region is the location of buckets (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// DefaultConfig returns the built-in connection defaults, matching a
// vanilla local MinIO deployment.
func DefaultConfig() Config {
	return Config{
		Endpoint:       "localhost:9000",
		AccessKey:      "minioadmin",
		SecretKey:      "minioadmin",
		UseSSL:         false,
		Region:         "",
		TimeoutSeconds: 30,
	}
}

// Option overrides a single connection setting during Resolve.
type Option func(*Config)

// WithEndpoint sets the storage service endpoint (host:port).
func WithEndpoint(endpoint string) Option {
	return func(c *Config) { c.Endpoint = endpoint }
}

// WithCredentials sets the access and secret keys.
func WithCredentials(accessKey, secretKey string) Option {
	return func(c *Config) {
		c.AccessKey = accessKey
		c.SecretKey = secretKey
	}
}

// WithSecure toggles SSL/TLS.
func WithSecure(secure bool) Option {
	return func(c *Config) { c.UseSSL = secure }
}

// WithRegion sets the bucket region.
func WithRegion(region string) Option {
	return func(c *Config) { c.Region = region }
}

// WithTimeout sets the connection timeout in seconds.
func WithTimeout(seconds int) Option {
	return func(c *Config) { c.TimeoutSeconds = seconds }
}

// Resolve builds the connection settings in three tiers: built-in
// defaults, then MINIO_* environment variables, then explicit options.
// Later tiers win.
func Resolve(opts ...Option) Config {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvAccessKey); v != "" {
		cfg.AccessKey = v
	}
	if v := os.Getenv(EnvSecretKey); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv(EnvSecure); v != "" {
		cfg.UseSSL = utils.ToBool(v)
	}
	if v := os.Getenv(EnvRegion); v != "" {
		cfg.Region = v
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
