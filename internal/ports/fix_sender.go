package ports

import (
	"context"

	"github.com/bft-labs/gtship/pkg/sender"
)

// FixSender delivers one request URL to the collector.
// Implementations make exactly one attempt and never retry.
type FixSender interface {
	// Send returns the collector outcome. A nil error means status 200.
	Send(ctx context.Context, url string) (sender.Outcome, error)
}
