package config

import "time"

const defaultAPITimeout = 30 * time.Second

// APIConfig contains the remote HR API endpoint configuration.
type APIConfig struct {
	// BaseURL is the API root every endpoint path is joined to.
	BaseURL string `env:"BASE_URL" envDefault:"http://127.0.0.1:8000/api"`

	// Timeout is the per-request transport timeout.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to API configuration.
func (c *APIConfig) Sanitize() {
	if c.Timeout <= 0 {
		c.Timeout = defaultAPITimeout
	}
}
