package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bft-labs/gtship/internal/domain"
	"github.com/bft-labs/gtship/internal/ports"
	"github.com/bft-labs/gtship/pkg/gprmc"
	"github.com/bft-labs/gtship/pkg/sender"
)

// JobState is the position of a dispatch job in its state machine.
type JobState int

const (
	JobPending JobState = iota
	JobRunning
	JobCompleted
	JobFailed
)

// String returns a human-readable representation of the job state.
func (s JobState) String() string {
	switch s {
	case JobPending:
		return "Pending"
	case JobRunning:
		return "Running"
	case JobCompleted:
		return "Completed"
	case JobFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s JobState) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// JobSpec is everything a job needs to deliver one batch of fixes.
type JobSpec struct {
	Endpoint domain.Endpoint
	Identity domain.Identity
	Fixes    []domain.Fix
	Sender   ports.FixSender
	Callback ports.Callback
	Logger   ports.Logger
}

// Job delivers one SendLocations batch, one GET per fix, in order.
// It reaches Completed or Failed exactly once, and its callback fires
// exactly once from that transition.
type Job struct {
	id       string
	endpoint domain.Endpoint
	identity domain.Identity
	fixes    []domain.Fix
	sender   ports.FixSender
	callback ports.Callback
	logger   ports.Logger

	mu    sync.Mutex
	state JobState
	sent  int
	err   error

	once sync.Once
	done chan struct{}
}

// NewJob creates a pending job. The fix slice is copied.
func NewJob(spec JobSpec) *Job {
	id := uuid.NewString()

	logger := spec.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	fixes := make([]domain.Fix, len(spec.Fixes))
	copy(fixes, spec.Fixes)

	return &Job{
		id:       id,
		endpoint: spec.Endpoint,
		identity: spec.Identity,
		fixes:    fixes,
		sender:   spec.Sender,
		callback: spec.Callback,
		logger:   logger.With(ports.String("job", id), ports.Int("fixes", len(fixes))),
		state:    JobPending,
		done:     make(chan struct{}),
	}
}

// ID returns the job's correlation id.
func (j *Job) ID() string { return j.id }

// Total returns the number of fixes in the batch.
func (j *Job) Total() int { return len(j.fixes) }

// Sent returns how many fixes the collector accepted so far.
func (j *Job) Sent() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.sent
}

// State returns the current job state.
func (j *Job) State() JobState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Done is closed when the job reaches a terminal state.
func (j *Job) Done() <-chan struct{} { return j.done }

// Err returns the failure cause once Done is closed; nil means completed.
func (j *Job) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Run delivers the fixes on the calling goroutine. It stops at the first
// failure; the remaining fixes are not attempted. An empty batch completes
// immediately. Calling Run on a job that is not pending does nothing.
func (j *Job) Run(ctx context.Context) {
	if !j.begin() {
		return
	}

	total := len(j.fixes)
	if total == 0 {
		j.logger.Debug("empty batch, nothing to send")
		j.finish(nil)
		return
	}

	if err := j.identity.Validate(); err != nil {
		j.logger.Error("refusing to send", ports.Err(err))
		j.finish(err)
		return
	}

	for i, fix := range j.fixes {
		if err := ctx.Err(); err != nil {
			j.logger.Warn("job interrupted", ports.Int("index", i), ports.Err(err))
			j.finish(fmt.Errorf("%w: %v", domain.ErrDispatcherStopped, err))
			return
		}

		url, err := sender.BuildRequestURL(j.endpoint, j.identity, gprmc.Encode(fix), fix.Altitude)
		if err != nil {
			j.logger.Error("build request url", ports.Int("index", i), ports.Err(err))
			j.finish(err)
			return
		}

		out, err := j.sender.Send(ctx, url)
		if err != nil {
			j.logger.Error("send failed",
				ports.Int("index", i),
				ports.Int("status", out.StatusCode),
				ports.String("body", out.Body),
				ports.Err(err),
			)
			j.finish(err)
			return
		}

		j.logger.Debug("fix accepted",
			ports.Int("index", i),
			ports.Time("at", fix.Time),
			ports.Float64("lat", fix.Latitude),
			ports.Float64("lon", fix.Longitude),
		)
		if j.markSent() == total {
			j.logger.Debug("all fixes accepted", ports.Int("sent", total))
			j.finish(nil)
			return
		}
	}
}

// Reject fails a job that never ran, e.g. when the queue is full.
func (j *Job) Reject(err error) {
	// Claiming the job here keeps a concurrent Run from starting it.
	if !j.begin() {
		return
	}
	j.logger.Warn("job rejected", ports.Err(err))
	j.finish(err)
}

func (j *Job) begin() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.state != JobPending {
		return false
	}
	j.state = JobRunning
	return true
}

func (j *Job) markSent() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.sent++
	return j.sent
}

// finish performs the single terminal transition and notifies the callback.
func (j *Job) finish(err error) {
	j.once.Do(func() {
		j.mu.Lock()
		if err != nil {
			j.state = JobFailed
		} else {
			j.state = JobCompleted
		}
		j.err = err
		j.mu.Unlock()

		close(j.done)

		if j.callback == nil {
			return
		}
		if err != nil {
			j.callback.OnFailure()
		} else {
			j.callback.OnComplete()
		}
	})
}

// noopLogger discards all log messages.
type noopLogger struct{}

func (noopLogger) Debug(msg string, fields ...ports.Field) {}
func (noopLogger) Info(msg string, fields ...ports.Field)  {}
func (noopLogger) Warn(msg string, fields ...ports.Field)  {}
func (noopLogger) Error(msg string, fields ...ports.Field) {}

func (n noopLogger) With(fields ...ports.Field) ports.Logger { return n }
