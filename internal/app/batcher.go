package app

import (
	"time"

	"github.com/bft-labs/gtship/internal/domain"
)

// Batcher groups streamed fixes into SendLocations batches.
// A batch is due when it holds maxFixes fixes or when sendInterval has
// elapsed since the last flush.
type Batcher struct {
	fixes        []domain.Fix
	maxFixes     int
	sendInterval time.Duration
	lastSend     time.Time
	now          func() time.Time
}

// NewBatcher creates a new batcher. maxFixes <= 0 means one fix per batch.
func NewBatcher(maxFixes int, sendInterval time.Duration) *Batcher {
	if maxFixes <= 0 {
		maxFixes = 1
	}
	b := &Batcher{
		fixes:        make([]domain.Fix, 0, maxFixes),
		maxFixes:     maxFixes,
		sendInterval: sendInterval,
		now:          time.Now,
	}
	b.lastSend = b.now()
	return b
}

// Add appends a fix to the batch.
// Returns true if the batch is full and should be sent.
func (b *Batcher) Add(fix domain.Fix) bool {
	b.fixes = append(b.fixes, fix)
	return len(b.fixes) >= b.maxFixes
}

// ShouldSend returns true if the batch should be sent based on the time trigger.
func (b *Batcher) ShouldSend() bool {
	if len(b.fixes) == 0 || b.sendInterval <= 0 {
		return false
	}
	return b.now().Sub(b.lastSend) >= b.sendInterval
}

// Take returns the pending fixes and starts a new batch.
func (b *Batcher) Take() []domain.Fix {
	out := b.fixes
	b.fixes = make([]domain.Fix, 0, b.maxFixes)
	b.lastSend = b.now()
	return out
}

// HasPending returns true if there are fixes waiting to be sent.
func (b *Batcher) HasPending() bool {
	return len(b.fixes) > 0
}

// Size returns the number of pending fixes.
func (b *Batcher) Size() int {
	return len(b.fixes)
}

// TimeSinceLastSend returns the duration since the last flush.
func (b *Batcher) TimeSinceLastSend() time.Duration {
	return b.now().Sub(b.lastSend)
}
