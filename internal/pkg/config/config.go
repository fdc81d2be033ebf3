package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Backend names accepted by the *_BACKEND variables.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Backends Backends
	Policy   PolicyConfig
	Audit    AuditConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type Backends struct {
	Directory string `env:"DIRECTORY_BACKEND, default=memory"`
	Session   string `env:"SESSION_BACKEND,   default=memory"`
	Audit     string `env:"AUDIT_BACKEND,     default=memory"`
}

type PolicyConfig struct {
	// File is a YAML feature table; empty means the built-in table.
	File         string `env:"POLICY_FILE"`
	DemoPassword string `env:"DEMO_PASSWORD, default=123456"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=vetcare"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
	// SessionTTL bounds how long a persisted identity survives; 0 keeps it
	// until logout.
	SessionTTL time.Duration `env:"SESSION_TTL, default=0s"`
}

// IsDevelopment reports whether pretty logs and demo defaults are acceptable.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown backends and a missing JWT secret outside
// development.
func (c *Config) Validate() error {
	var errs []error
	check := func(name, value string, allowed ...string) {
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s: unsupported backend %q", name, value))
	}
	check("DIRECTORY_BACKEND", c.Backends.Directory, BackendMemory, BackendMongo)
	check("SESSION_BACKEND", c.Backends.Session, BackendMemory, BackendRedis)
	check("AUDIT_BACKEND", c.Backends.Audit, BackendMemory, BackendMongo)

	if c.JWTSecret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.Audit.Workers <= 0 {
		errs = append(errs, errors.New("AUDIT_WORKERS must be positive"))
	}
	if c.Redis.SessionTTL < 0 {
		errs = append(errs, errors.New("SESSION_TTL must not be negative"))
	}
	return errors.Join(errs...)
}
