package app

import (
	"context"
	"time"

	"github.com/bft-labs/gtship/internal/domain"
	"github.com/bft-labs/gtship/internal/ports"
)

// LocationSender is the client surface the reporter drives.
type LocationSender interface {
	SendLocations(id, accountName string, fixes []domain.Fix)
}

// ReporterConfig contains configuration for the reporting loop.
type ReporterConfig struct {
	DeviceID     string
	AccountName  string
	BatchSize    int
	SendInterval time.Duration
}

// Reporter batches fixes arriving on a channel and hands each batch to a
// LocationSender. It never waits for delivery; outcomes arrive through the
// client's callback.
type Reporter struct {
	config  ReporterConfig
	client  LocationSender
	logger  ports.Logger
	batcher *Batcher
	batches int
}

// NewReporter creates a new reporter with the given dependencies.
func NewReporter(config ReporterConfig, client LocationSender, logger ports.Logger) *Reporter {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Reporter{
		config:  config,
		client:  client,
		logger:  logger,
		batcher: NewBatcher(config.BatchSize, config.SendInterval),
	}
}

// Run consumes fixes until the channel closes or the context is canceled.
// Pending fixes are flushed before returning.
func (r *Reporter) Run(ctx context.Context, fixes <-chan domain.Fix) error {
	tick := r.config.SendInterval
	if tick <= 0 {
		tick = time.Second
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.flush("shutdown")
			return ctx.Err()

		case fix, ok := <-fixes:
			if !ok {
				r.flush("source closed")
				return nil
			}
			if r.batcher.Add(fix) {
				r.flush("batch full")
			}

		case <-ticker.C:
			if r.batcher.ShouldSend() {
				r.flush("interval")
			}
		}
	}
}

// Batches returns how many batches were handed to the client.
func (r *Reporter) Batches() int {
	return r.batches
}

func (r *Reporter) flush(reason string) {
	if !r.batcher.HasPending() {
		return
	}
	batch := r.batcher.Take()
	r.batches++
	r.logger.Debug("submitting batch",
		ports.Int("fixes", len(batch)),
		ports.String("reason", reason),
	)
	r.client.SendLocations(r.config.DeviceID, r.config.AccountName, batch)
}
