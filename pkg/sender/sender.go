package sender

import "context"

// Outcome is what the collector answered for one fix.
type Outcome struct {
	StatusCode int
	Body       string
}

// OK reports whether the collector accepted the fix.
func (o Outcome) OK() bool {
	return o.StatusCode == 200
}

// Sender performs exactly one delivery attempt for a request URL.
type Sender interface {
	// Send issues the request. A non-nil error wraps domain.ErrTransport for
	// network failures or is a *domain.StatusError for any status but 200.
	Send(ctx context.Context, url string) (Outcome, error)
}
