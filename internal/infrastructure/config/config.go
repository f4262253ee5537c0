// Package config loads the service configuration.
//
// Values are resolved with this precedence (highest first):
//  1. Environment variables prefixed with SGP_ (SGP_SERVER_PORT, SGP_DATABASE_PATH, ...)
//  2. config.yaml in ., ./configs or /etc/sgp, or an explicit file
//  3. Built-in defaults
//
// PORT is also honored for the server port, as most hosting platforms set it.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SGP"

// Config holds all application configuration.
type Config struct {
	// App contains application-level configuration
	App AppConfig `mapstructure:"app"`

	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Log contains logger configuration
	Log LogConfig `mapstructure:"log"`

	// Database contains SQLite configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Cache contains calculation cache configuration
	Cache CacheConfig `mapstructure:"cache"`

	// RateLimit contains per-client request limits
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Benchmark bounds the benchmark endpoint
	Benchmark BenchmarkConfig `mapstructure:"benchmark"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	// Name of the application
	Name string `mapstructure:"name"`

	// Environment the application is running in (development, staging, production)
	Environment string `mapstructure:"environment"`

	// Version of the application, reported by /health and the API version header
	Version string `mapstructure:"version"`

	// Debug mode flag
	Debug bool `mapstructure:"debug"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// RequestTimeout bounds the handling of a single request
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// MaxRequestSize is the maximum allowed request body size in bytes
	MaxRequestSize int64 `mapstructure:"max_request_size"`

	// CORSAllowedOrigins is a list of allowed origins for CORS
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Address returns the host:port the server listens on.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig contains logger configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format is json or console
	Format string `mapstructure:"format"`
}

// DatabaseConfig contains SQLite configuration.
type DatabaseConfig struct {
	// Path is the database file, or ":memory:"
	Path string `mapstructure:"path"`

	// BusyTimeout is how long a statement waits on a locked database
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// CacheConfig contains calculation cache configuration.
type CacheConfig struct {
	// Capacity is the maximum number of cached entries
	Capacity int `mapstructure:"capacity"`
}

// RateLimitConfig contains per-client request limits.
type RateLimitConfig struct {
	// Enabled turns the limiter on
	Enabled bool `mapstructure:"enabled"`

	// RequestsPerSecond is the sustained rate allowed per client IP
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`

	// Burst is the number of requests allowed above the sustained rate
	Burst int `mapstructure:"burst"`
}

// BenchmarkConfig bounds the benchmark endpoint.
type BenchmarkConfig struct {
	// MaxIterations is the largest accepted iteration count
	MaxIterations int `mapstructure:"max_iterations"`
}

// Load reads the configuration from the default search paths, the
// environment and the defaults. A missing config file is not an error.
//
// Returns:
//   - *Config: The loaded and validated configuration
//   - error: Any error encountered during loading or validation
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/sgp")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFile reads the configuration from an explicit file, then applies the
// environment. The file must exist.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return decode(v)
}

// MustLoad loads the configuration and panics on error.
// Use this in application entry points where configuration is required.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "sgp-engine")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.debug", false)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 10*time.Second)
	v.SetDefault("server.max_request_size", 1<<20) // 1MB
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.path", "sgp.db")
	v.SetDefault("database.busy_timeout", 5*time.Second)

	v.SetDefault("cache.capacity", 1024)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 50.0)
	v.SetDefault("rate_limit.burst", 100)

	v.SetDefault("benchmark.max_iterations", 1_000_000)
}

// bindEnvVars binds environment variables that do not follow the prefix scheme.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}
	if c.Server.MaxRequestSize <= 0 {
		errs = append(errs, errors.New("server.max_request_size must be positive"))
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}

	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Cache.Capacity <= 0 {
		errs = append(errs, errors.New("cache.capacity must be positive"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate_limit.requests_per_second and rate_limit.burst must be positive"))
	}
	if c.Benchmark.MaxIterations <= 0 {
		errs = append(errs, errors.New("benchmark.max_iterations must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
