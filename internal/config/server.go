package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/ramp/cost-calculator/internal/domain"
)

// ServerConfig configures `rampcalc serve`. Flags override these values.
type ServerConfig struct {
	Address      string             `envconfig:"RAMP_ADDRESS" default:":8080"`
	LogLevel     string             `envconfig:"RAMP_LOG_LEVEL" default:"info"`
	CORSOrigins  []string           `envconfig:"RAMP_CORS_ORIGINS" default:"*"`
	Granularity  domain.Granularity `envconfig:"RAMP_GRANULARITY" default:"yearly"`
	ReadTimeout  time.Duration      `envconfig:"RAMP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration      `envconfig:"RAMP_WRITE_TIMEOUT" default:"30s"`
}

// NewServerConfig reads the server configuration from the environment.
func NewServerConfig() (*ServerConfig, error) {
	cfg := new(ServerConfig)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read server configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values envconfig cannot.
func (c *ServerConfig) Validate() error {
	if c.Address == "" {
		return &domain.ValidationError{Field: "address", Reason: "is required"}
	}
	if !c.Granularity.IsValid() {
		return &domain.ValidationError{Field: "granularity", Reason: fmt.Sprintf("unknown granularity %q", string(c.Granularity))}
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return &domain.ValidationError{Field: "timeout", Reason: "read and write timeouts must be positive"}
	}
	return nil
}
