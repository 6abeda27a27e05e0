package app

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/gtship/internal/domain"
	"github.com/bft-labs/gtship/internal/ports"
)

// DefaultQueueCapacity is the number of jobs that may wait behind the one in flight.
const DefaultQueueCapacity = 128

// Submitter accepts jobs for execution without blocking the caller.
type Submitter interface {
	// Submit hands the job over. When the job cannot be accepted it is
	// failed through its callback and the admission error is returned for
	// diagnostics.
	Submit(job *Job) error
}

// Dispatcher runs jobs on a single background worker, strictly in submission
// order, with a fixed-capacity queue. A full queue rejects instead of blocking.
// One dispatcher is meant to be shared by every client in the process.
type Dispatcher struct {
	// mu orders Submit against the Running -> Stopping transition so no job
	// is enqueued after the final drain.
	mu              sync.RWMutex
	queue           chan *Job
	lifecycle       *Lifecycle
	logger          ports.Logger
	shutdownTimeout time.Duration

	// workerDone is closed when the most recently started worker returns.
	// A worker abandoned by a timed-out Stop keeps it open.
	workerDone chan struct{}
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithShutdownTimeout bounds how long Stop waits for the in-flight job.
func WithShutdownTimeout(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.shutdownTimeout = d
		}
	}
}

// WithStateObserver registers an observer for lifecycle transitions.
func WithStateObserver(o StateObserver) DispatcherOption {
	return func(disp *Dispatcher) {
		disp.lifecycle.observer = o
	}
}

// NewDispatcher creates a stopped dispatcher. capacity <= 0 selects DefaultQueueCapacity.
func NewDispatcher(capacity int, logger ports.Logger, opts ...DispatcherOption) *Dispatcher {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	if logger == nil {
		logger = noopLogger{}
	}

	d := &Dispatcher{
		queue:           make(chan *Job, capacity),
		lifecycle:       NewLifecycle(logger, nil),
		logger:          logger,
		shutdownTimeout: ShutdownTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches the worker. The context bounds the worker's lifetime and
// is passed to every job it runs; once it is canceled the dispatcher stops
// on its own and fails whatever is still queued.
// Start refuses with ErrWorkerBusy while a worker abandoned by a timed-out
// Stop is still inside a job.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if d.workerDone != nil {
		select {
		case <-d.workerDone:
		default:
			return domain.ErrWorkerBusy
		}
	}
	if err := d.lifecycle.TransitionTo(StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.lifecycle.SetCancel(cancel)

	done := make(chan struct{})
	d.workerDone = done
	d.lifecycle.AddWorker()
	go d.work(runCtx, done)

	if err := d.lifecycle.TransitionTo(StateRunning, "worker started"); err != nil {
		cancel()
		return err
	}

	d.logger.Info("dispatcher started", ports.Int("capacity", cap(d.queue)))
	return nil
}

// Submit enqueues the job without blocking. If the dispatcher is not running
// or the queue is full the job fails immediately through its callback.
func (d *Dispatcher) Submit(job *Job) error {
	err := d.enqueue(job)
	if err == nil {
		d.logger.Debug("job queued",
			ports.String("job", job.ID()),
			ports.Int("pending", len(d.queue)),
		)
		return nil
	}

	d.logger.Warn("job not accepted",
		ports.String("job", job.ID()),
		ports.Int("fixes", job.Total()),
		ports.Err(err),
	)
	job.Reject(err)
	return err
}

// Stop cancels the in-flight job, fails every queued job with
// ErrDispatcherStopped and waits for the worker to exit.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if !d.lifecycle.CanStop() {
		d.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := d.lifecycle.TransitionTo(StateStopping, "Stop() called"); err != nil {
		d.mu.Unlock()
		return err
	}
	d.lifecycle.Cancel()
	d.mu.Unlock()

	err := d.lifecycle.WaitWithTimeout(d.shutdownTimeout)

	dropped := d.drain(domain.ErrDispatcherStopped)
	if dropped > 0 {
		d.logger.Warn("dropped queued jobs on stop", ports.Int("jobs", dropped))
	}

	if err != nil {
		_ = d.lifecycle.TransitionTo(StateCrashed, "shutdown timeout")
	} else {
		_ = d.lifecycle.TransitionTo(StateStopped, "graceful shutdown")
	}
	return err
}

// Status returns the current lifecycle state.
func (d *Dispatcher) Status() State {
	return d.lifecycle.State()
}

// Pending returns the number of queued jobs, excluding the one in flight.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Capacity returns the queue capacity.
func (d *Dispatcher) Capacity() int {
	return cap(d.queue)
}

func (d *Dispatcher) enqueue(job *Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.lifecycle.State() != StateRunning {
		return domain.ErrNotRunning
	}
	select {
	case d.queue <- job:
		return nil
	default:
		return domain.ErrQueueFull
	}
}

func (d *Dispatcher) work(ctx context.Context, done chan struct{}) {
	halted := false
	defer func() {
		d.lifecycle.WorkerDone()
		close(done)
		if halted {
			_ = d.lifecycle.TransitionTo(StateStopped, "context canceled")
		}
	}()

	for {
		// a canceled run wins over queued work
		if ctx.Err() != nil {
			halted = d.halt()
			return
		}
		select {
		case <-ctx.Done():
			halted = d.halt()
			return
		case job := <-d.queue:
			job.Run(ctx)
			if err := job.Err(); err != nil {
				d.logger.Info("job failed",
					ports.String("job", job.ID()),
					ports.Int("sent", job.Sent()),
					ports.Int("fixes", job.Total()),
				)
			} else {
				d.logger.Info("job completed",
					ports.String("job", job.ID()),
					ports.Int("fixes", job.Total()),
				)
			}
		}
	}
}

// halt leaves Running when the run context ends without Stop, so Submit
// rejects from then on and nothing stays queued without a worker. It
// reports whether the worker owns the final transition to Stopped.
func (d *Dispatcher) halt() bool {
	d.mu.Lock()
	if d.lifecycle.State() != StateRunning {
		d.mu.Unlock()
		return false
	}
	err := d.lifecycle.TransitionTo(StateStopping, "context canceled")
	d.mu.Unlock()
	if err != nil {
		return false
	}

	if dropped := d.drain(domain.ErrDispatcherStopped); dropped > 0 {
		d.logger.Warn("dropped queued jobs on cancel", ports.Int("jobs", dropped))
	}
	d.logger.Info("dispatcher stopped by context")
	return true
}

func (d *Dispatcher) drain(err error) int {
	n := 0
	for {
		select {
		case job := <-d.queue:
			job.Reject(err)
			n++
		default:
			return n
		}
	}
}

// InlineDispatcher runs each job to completion on the submitting goroutine.
// It is meant for tests and one-shot tools where blocking is acceptable.
type InlineDispatcher struct {
	ctx context.Context
}

// NewInlineDispatcher creates an inline dispatcher whose jobs run under ctx.
func NewInlineDispatcher(ctx context.Context) *InlineDispatcher {
	if ctx == nil {
		ctx = context.Background()
	}
	return &InlineDispatcher{ctx: ctx}
}

// Submit runs the job synchronously. It never rejects.
func (d *InlineDispatcher) Submit(job *Job) error {
	job.Run(d.ctx)
	return nil
}

var (
	_ Submitter = (*Dispatcher)(nil)
	_ Submitter = (*InlineDispatcher)(nil)
)
