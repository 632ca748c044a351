// Package config manages the application configuration.
//
// Configuration is layered the same way for every environment:
//   - built-in defaults (see defaults.go) are loaded first,
//   - environment variables prefixed with AWESOME_ override them,
//   - a `.env` file, when present, is loaded into the process env beforehand.
//
// The merged tree is unmarshalled into Config and validated so the app fails
// fast on bad or missing values.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration environment variable carries.
//
// Nesting levels are separated by a double underscore, so
//
//	AWESOME_DATABASE__HOST       -> database.host
//	AWESOME_SERVER__READ_TIMEOUT -> server.read_timeout
const EnvPrefix = "AWESOME_"

// ServiceName is the name the service reports to logs and APM.
const ServiceName = "awesome-blog"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// AuthRateLimit is the number of sign-in/register attempts allowed per
	// second per client IP.
	AuthRateLimit float64 `koanf:"auth_rate_limit" validate:"gt=0"`

	// StaticDir is the directory served under /static.
	StaticDir string `koanf:"static_dir" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// ConnMaxLifetime and ConnMaxIdleTime are in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN builds the postgres URL for this database.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		d.Name,
		d.SSLMode,
	)
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// DefaultSecretKey is the built-in session key. It is only accepted locally.
const DefaultSecretKey = "Awesome"

// MinSecretKeyLength is the shortest session key accepted outside local.
const MinSecretKeyLength = 32

// AuthConfig stores session settings.
//
// SecretKey signs session tokens; it must be overridden outside local setups.
type AuthConfig struct {
	SecretKey  string        `koanf:"secret_key" validate:"required"`
	SessionTTL time.Duration `koanf:"session_ttl" validate:"min=1m"`
	CookieName string        `koanf:"cookie_name" validate:"required"`
}

// Validate checks the session key for the given environment. Anyone who
// knows the key can sign sessions, so non-local environments need a private
// key of at least MinSecretKeyLength bytes.
func (a AuthConfig) Validate(env string) error {
	if env == "local" {
		return nil
	}
	if a.SecretKey == DefaultSecretKey {
		return fmt.Errorf("secret_key must be overridden in %s", env)
	}
	if len(a.SecretKey) < MinSecretKeyLength {
		return fmt.Errorf("secret_key must be at least %d bytes in %s", MinSecretKeyLength, env)
	}
	return nil
}

// IntegrationConfig holds credentials for third-party services.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// LoadConfig loads configuration from defaults and environment variables,
// validates it, and returns the result.
func LoadConfig() (*Config, error) {
	return load(EnvPrefix)
}

func load(prefix string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}

	err := k.Load(env.ProviderWithValue(prefix, ".", func(s, v string) (string, interface{}) {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "__", ".")
		if _, ok := listKeys[key]; ok {
			return key, splitList(v)
		}
		return key, v
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Auth.Validate(mainConfig.Primary.Env); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// listKeys are the keys whose env values are comma-separated lists.
var listKeys = map[string]struct{}{
	"server.cors_allowed_origins":         {},
	"observability.health_checks.checks": {},
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsLocal reports whether the app runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
