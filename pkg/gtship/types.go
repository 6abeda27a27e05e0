package gtship

import (
	"github.com/bft-labs/gtship/internal/app"
	"github.com/bft-labs/gtship/internal/domain"
	"github.com/bft-labs/gtship/internal/ports"
)

// Fix is one positional sample. See domain.Fix.
type Fix = domain.Fix

// Endpoint identifies the collector.
type Endpoint = domain.Endpoint

// Logger is the structured logging interface from pkg/log.
type Logger = ports.Logger

// HTTPClient is satisfied by *http.Client.
type HTTPClient = ports.HTTPClient

// Job is one queued SendLocations batch.
type Job = app.Job

// Submitter accepts jobs; both dispatchers implement it.
type Submitter = app.Submitter

// Dispatcher is the bounded single-worker queue shared by clients.
type Dispatcher = app.Dispatcher

// InlineDispatcher runs jobs synchronously on the submitting goroutine.
type InlineDispatcher = app.InlineDispatcher

// DispatcherOption configures a Dispatcher.
type DispatcherOption = app.DispatcherOption

// State is the lifecycle state of a Dispatcher.
type State = app.State

const (
	StateStopped  = app.StateStopped
	StateStarting = app.StateStarting
	StateRunning  = app.StateRunning
	StateStopping = app.StateStopping
	StateCrashed  = app.StateCrashed
)

// DefaultQueueCapacity is the number of batches that may wait behind the one in flight.
const DefaultQueueCapacity = app.DefaultQueueCapacity

// Errors reported by the client and dispatcher. Use errors.Is to match.
var (
	ErrEncoding          = domain.ErrEncoding
	ErrTransport         = domain.ErrTransport
	ErrUnexpectedStatus  = domain.ErrUnexpectedStatus
	ErrQueueFull         = domain.ErrQueueFull
	ErrDispatcherStopped = domain.ErrDispatcherStopped
	ErrMissingDeviceID   = domain.ErrMissingDeviceID
	ErrAlreadyRunning    = domain.ErrAlreadyRunning
	ErrNotRunning        = domain.ErrNotRunning
	ErrShutdownTimeout   = domain.ErrShutdownTimeout
	ErrWorkerBusy        = domain.ErrWorkerBusy
	ErrInvalidConfig     = domain.ErrInvalidConfig
)

// NewDispatcher creates a stopped dispatcher; call Start before submitting.
// capacity <= 0 selects DefaultQueueCapacity. A nil logger discards logs.
func NewDispatcher(capacity int, logger Logger, opts ...DispatcherOption) *Dispatcher {
	return app.NewDispatcher(capacity, logger, opts...)
}

// NewInlineDispatcher returns a dispatcher that blocks the caller until each
// batch is delivered. Useful for tests and one-shot tools.
var NewInlineDispatcher = app.NewInlineDispatcher

// WithShutdownTimeout bounds how long Dispatcher.Stop waits for the in-flight batch.
var WithShutdownTimeout = app.WithShutdownTimeout

// FixFromMillis builds a Fix from an epoch-millisecond timestamp.
var FixFromMillis = domain.FixFromMillis
