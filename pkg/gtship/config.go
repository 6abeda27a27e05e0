package gtship

import (
	"fmt"
	"strings"
	"time"

	"github.com/bft-labs/gtship/internal/domain"
)

// DefaultHTTPTimeout bounds each GET when no HTTP client is injected.
const DefaultHTTPTimeout = 15 * time.Second

// Config describes the collector endpoint. It is fixed for the life of a client.
type Config struct {
	// Host is the collector host name or address, without scheme. Required.
	Host string

	// Port is the collector port. Zero omits the port from the URL.
	Port int

	// Path is appended verbatim after host[:port], e.g. "/gprmc/Data".
	Path string

	// HTTPTimeout is the timeout of the default HTTP client.
	HTTPTimeout time.Duration
}

// DefaultConfig returns a Config with sensible default values.
// Host must still be set.
func DefaultConfig() Config {
	return Config{
		HTTPTimeout: DefaultHTTPTimeout,
	}
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	host := strings.TrimSpace(c.Host)
	if host == "" {
		return fmt.Errorf("%w: host is required", domain.ErrInvalidConfig)
	}
	if strings.Contains(host, "://") {
		return fmt.Errorf("%w: host %q must not include a scheme", domain.ErrInvalidConfig, c.Host)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", domain.ErrInvalidConfig, c.Port)
	}
	if c.Path != "" && !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("%w: path %q must start with /", domain.ErrInvalidConfig, c.Path)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: negative http timeout", domain.ErrInvalidConfig)
	}
	return nil
}

// Endpoint returns the collector endpoint described by the config.
func (c Config) Endpoint() Endpoint {
	return Endpoint{Host: strings.TrimSpace(c.Host), Port: c.Port, Path: c.Path}
}
