// Package config loads the service configuration from a YAML file, an
// optional .env file and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no explicit configuration file is given.
const DefaultPath = "config/itinfra.yaml"

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Events    EventsConfig    `yaml:"events"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Servers   []OMASServer    `yaml:"servers"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host" env:"ITINFRA_HOST"`
	Port            int           `yaml:"port" env:"ITINFRA_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"ITINFRA_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"ITINFRA_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"ITINFRA_SHUTDOWN_TIMEOUT"`
	AuditFile       string        `yaml:"audit_file" env:"ITINFRA_AUDIT_FILE"`
}

// DatabaseConfig selects the metadata repository backend. An empty driver
// keeps everything in memory.
type DatabaseConfig struct {
	Driver          string `yaml:"driver" env:"DATABASE_DRIVER"`
	DSN             string `yaml:"dsn" env:"DATABASE_URL"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME"`
	AutoMigrate     bool   `yaml:"auto_migrate" env:"DATABASE_AUTO_MIGRATE"`
}

// LoggingConfig mirrors logger.LoggingConfig.
type LoggingConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	Output     string `yaml:"output" env:"LOG_OUTPUT"`
	FilePrefix string `yaml:"file_prefix" env:"LOG_FILE_PREFIX"`
}

// AuthConfig enables bearer token validation when a secret is set.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"ITINFRA_JWT_SECRET"`
	Issuer    string `yaml:"issuer" env:"ITINFRA_JWT_ISSUER"`
}

// Enabled reports whether requests must carry a bearer token.
func (a AuthConfig) Enabled() bool {
	return strings.TrimSpace(a.JWTSecret) != ""
}

// RateLimitConfig throttles callers. Zero disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond int `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// EventsConfig configures out-topic publishing.
type EventsConfig struct {
	RedisURL      string `yaml:"redis_url" env:"EVENTS_REDIS_URL"`
	ChannelPrefix string `yaml:"channel_prefix" env:"EVENTS_CHANNEL_PREFIX"`
	WebSocket     bool   `yaml:"websocket" env:"EVENTS_WEBSOCKET"`
}

// MetricsConfig configures the element-count collector.
type MetricsConfig struct {
	CountSchedule string `yaml:"count_schedule" env:"METRICS_COUNT_SCHEDULE"`
}

// OMASServer describes one server (tenant) hosting the access service.
type OMASServer struct {
	Name              string   `yaml:"name"`
	LocalServerUserID string   `yaml:"local_server_user_id"`
	MaxPageSize       int      `yaml:"max_page_size"`
	SupportedZones    []string `yaml:"supported_zones"`
	DefaultZones      []string `yaml:"default_zones"`
	PublishZones      []string `yaml:"publish_zones"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            9443,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logging: LoggingConfig{Level: "info", Format: "text", Output: "stderr"},
		CORS:    CORSConfig{AllowedOrigins: []string{"*"}},
		Events:  EventsConfig{ChannelPrefix: "itinfra.out"},
		Metrics: MetricsConfig{CountSchedule: "@every 1m"},
		Servers: []OMASServer{{
			Name:              "cocoMDS1",
			LocalServerUserID: "cocoMDS1npa",
			MaxPageSize:       500,
		}},
	}
}

// Load reads configuration from path. A missing file is not an error; the
// defaults plus environment overrides are used instead.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv("ITINFRA_CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.Driver != "" && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when database.driver is set")
	}
	if len(c.Servers) == 0 {
		return fmt.Errorf("at least one server must be configured")
	}
	seen := make(map[string]struct{}, len(c.Servers))
	for i, srv := range c.Servers {
		name := strings.TrimSpace(srv.Name)
		if name == "" {
			return fmt.Errorf("servers[%d]: name is required", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("servers[%d]: duplicate server name %s", i, name)
		}
		seen[name] = struct{}{}
		if srv.MaxPageSize < 0 {
			return fmt.Errorf("server %s: max_page_size must not be negative", name)
		}
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must not be negative")
	}
	return nil
}

// Address returns the host:port listen address.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
