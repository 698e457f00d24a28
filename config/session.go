package config

import (
	"fmt"
	"strings"
	"time"
)

const defaultSessionTTL = 12 * time.Hour

// StoreKind selects where the session token is persisted.
type StoreKind string

const (
	// StoreMemory keeps the token in process memory; it is gone when the
	// console exits.
	StoreMemory StoreKind = "memory"
	// StoreRedis keeps the token in Redis so a restarted console resumes
	// its session silently.
	StoreRedis StoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StoreKind.
func (k *StoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "memory", "redis":
		*k = StoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid StoreKind: %q (valid options: memory, redis)", v)
	}
}

// SessionConfig contains token store configuration.
type SessionConfig struct {
	// Store selects the token store adapter.
	Store StoreKind `env:"SESSION_STORE" envDefault:"memory"`

	// TTL caps how long a persisted token is offered for silent
	// resumption (redis store only).
	TTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// KeyPrefix namespaces the redis key.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"hr-console:"`
}

// Sanitize applies guardrails to session configuration.
func (c *SessionConfig) Sanitize() {
	if c.TTL <= 0 {
		c.TTL = defaultSessionTTL
	}
}

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
