package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const minSessionSecretLength = 32

// ProfileServiceConfig holds all configuration of the profile service.
type ProfileServiceConfig struct {
	ServiceName          string        `env:"SERVICE_NAME"             envDefault:"profile-service"`
	Port                 int           `env:"PORT"                     envDefault:"3000"`
	ReadHeaderTimeout    time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT"         envDefault:"10s"`
	GRPCHealthAddr       string        `env:"GRPC_HEALTH_ADDR"`
	ConsulAddr           string        `env:"CONSUL_ADDR"`
	ServiceAdvertiseHost string        `env:"SERVICE_ADVERTISE_HOST"   envDefault:"localhost"`
	RedisURL             string        `env:"REDIS_URL"`
	Mongo                MongoConfig   `envPrefix:"MONGO_"`
	Session              SessionConfig `envPrefix:"SESSION_"`
	Log                  LogConfig     `envPrefix:"LOG_"`
}

type MongoConfig struct {
	URI            string        `env:"URI"             envDefault:"mongodb://localhost:27017"`
	Database       string        `env:"DATABASE"        envDefault:"userProfileDB"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}

// Session stores accepted by SESSION_STORE. SessionStoreAuto picks Redis when
// REDIS_URL is set and MongoDB otherwise.
const (
	SessionStoreAuto   = "auto"
	SessionStoreRedis  = "redis"
	SessionStoreMongo  = "mongo"
	SessionStoreMemory = "memory"
)

type SessionConfig struct {
	Secret          string        `env:"SECRET"`
	Store           string        `env:"STORE"            envDefault:"auto"`
	TTL             time.Duration `env:"TTL"              envDefault:"24h"`
	CookieName      string        `env:"COOKIE_NAME"      envDefault:"profile_session"`
	CookieSecure    bool          `env:"COOKIE_SECURE"    envDefault:"false"`
	Issuer          string        `env:"ISSUER"           envDefault:"profile-service"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1m"`
}

type LogConfig struct {
	Level  string `env:"LEVEL"  envDefault:"info"`
	Pretty bool   `env:"PRETTY" envDefault:"false"`
}

// Load reads a .env file when one is present, then parses the environment.
func Load() (*ProfileServiceConfig, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[ProfileServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// HTTPAddr is the listen address of the HTTP server.
func (c *ProfileServiceConfig) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *ProfileServiceConfig) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.Mongo.URI == "" {
		return errors.New("missing MONGO_URI environment variable")
	}
	if c.Mongo.Database == "" {
		return errors.New("missing MONGO_DATABASE environment variable")
	}
	if c.Session.Secret == "" {
		return errors.New("missing SESSION_SECRET environment variable")
	}
	if len(c.Session.Secret) < minSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLength)
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Session.CleanupInterval <= 0 {
		return errors.New("SESSION_CLEANUP_INTERVAL must be positive")
	}
	switch c.Session.Store {
	case SessionStoreAuto, SessionStoreMongo, SessionStoreMemory:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			return errors.New("SESSION_STORE=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("invalid SESSION_STORE %q", c.Session.Store)
	}
	if c.Session.CookieName == "" {
		return errors.New("missing SESSION_COOKIE_NAME environment variable")
	}

	return nil
}

// SessionBackend resolves the session store to use.
func (c *ProfileServiceConfig) SessionBackend() string {
	if c.Session.Store != SessionStoreAuto {
		return c.Session.Store
	}
	if c.RedisURL != "" {
		return SessionStoreRedis
	}
	return SessionStoreMongo
}
