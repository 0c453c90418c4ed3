package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=15s"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	CORS  CORSConfig
	Audit AuditConfig
}

type AuthConfig struct {
	// JWTSecret signs and verifies every token. There is no default.
	JWTSecret          string        `env:"JWT_SECRET, required"`
	TokenTTL           time.Duration `env:"TOKEN_TTL,  default=168h"`
	BcryptCost         int           `env:"BCRYPT_COST, default=10"`
	LoginMaxFailures   int           `env:"LOGIN_MAX_FAILURES, default=5"`
	LoginFailureWindow time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,  default=movie_api"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig is optional: an empty Addr disables the login throttle.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:4200,http://localhost:8080,http://localhost:1234,http://localhost:3000,http://testsite.com,https://kraftflix-89566322872a.herokuapp.com,https://2f7sjs.csb.app,https://kraftflix.netlify.app,https://tk1893.github.io"`
}

type AuditConfig struct {
	Enabled bool `env:"AUDIT_ENABLED, default=true"`
	Workers int  `env:"AUDIT_WORKERS, default=4"`
}

// ThrottleEnabled reports whether Redis is configured.
func (c *Config) ThrottleEnabled() bool {
	return c.Redis.Addr != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l. Tests pass an envconfig.MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", cfg.Auth.TokenTTL)
	}
	return &cfg, nil
}
