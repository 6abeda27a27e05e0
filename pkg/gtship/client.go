package gtship

import (
	"fmt"
	"net/http"

	"github.com/bft-labs/gtship/internal/app"
	"github.com/bft-labs/gtship/internal/domain"
	"github.com/bft-labs/gtship/internal/ports"
	"github.com/bft-labs/gtship/pkg/log"
	"github.com/bft-labs/gtship/pkg/sender"
)

// Client turns location batches into dispatch jobs for one collector endpoint.
// A Client is safe for concurrent use; it holds no per-call state.
type Client struct {
	endpoint   Endpoint
	dispatcher Submitter
	callback   Callback
	sender     *sender.HTTPSender
	logger     ports.Logger
}

// New creates a client for the collector in cfg. Jobs are handed to
// dispatcher, which is usually shared by every client in the process.
// callback may be nil when the caller does not need outcomes.
func New(cfg Config, dispatcher Submitter, callback Callback, opts ...Option) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("%w: dispatcher is required", domain.ErrInvalidConfig)
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}

	endpoint := cfg.Endpoint()
	logger := o.logger.With(ports.String("collector", sender.BaseURL(endpoint)))

	return &Client{
		endpoint:   endpoint,
		dispatcher: dispatcher,
		callback:   callback,
		sender:     sender.NewHTTPSender(o.httpClient, logger),
		logger:     logger,
	}, nil
}

// SendLocations queues one batch for delivery and returns immediately.
// accountName may be empty, in which case id doubles as the account.
// The outcome is reported once through the client's callback; a batch the
// dispatcher cannot accept fails before SendLocations returns.
func (c *Client) SendLocations(id, accountName string, fixes []Fix) {
	job := c.newJob(id, accountName, fixes)
	// Admission errors are logged by the dispatcher and reported via OnFailure.
	_ = c.dispatcher.Submit(job)
}

// SendLocation queues a single fix. Equivalent to SendLocations with one fix.
func (c *Client) SendLocation(id, accountName string, fix Fix) {
	c.SendLocations(id, accountName, []Fix{fix})
}

// SendRaw is reserved for the raw binary transport, which is not supported.
// It does nothing and never invokes the callback.
func (c *Client) SendRaw(id string, fix Fix) {
	c.logger.Debug("raw transport not supported, fix dropped", ports.String("device", id))
}

// OnComplete relays a job completion to the configured callback.
func (c *Client) OnComplete() {
	if c.callback != nil {
		c.callback.OnComplete()
	}
}

// OnFailure relays a job failure to the configured callback.
func (c *Client) OnFailure() {
	if c.callback != nil {
		c.callback.OnFailure()
	}
}

// Endpoint returns the collector endpoint.
func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}

func (c *Client) newJob(id, accountName string, fixes []Fix) *app.Job {
	return app.NewJob(app.JobSpec{
		Endpoint: c.endpoint,
		Identity: domain.Identity{DeviceID: id, AccountName: accountName},
		Fixes:    fixes,
		Sender:   c.sender,
		Callback: c,
		Logger:   c.logger.With(ports.String("device", id)),
	})
}

var (
	_ Callback           = (*Client)(nil)
	_ app.LocationSender = (*Client)(nil)
)
