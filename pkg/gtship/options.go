package gtship

import (
	"github.com/bft-labs/gtship/internal/ports"
	"github.com/bft-labs/gtship/pkg/log"
)

// Option configures optional behavior of a Client.
type Option func(*options)

type options struct {
	httpClient ports.HTTPClient
	logger     ports.Logger
}

// WithHTTPClient sets the HTTP client used for collector requests.
// If not provided, an *http.Client with Config.HTTPTimeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a logger for delivery diagnostics.
// If not provided, nothing is logged.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger()}
}
