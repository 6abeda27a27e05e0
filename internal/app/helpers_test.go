package app

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/gtship/internal/domain"
	"github.com/bft-labs/gtship/pkg/sender"
)

// fakeSender records every URL and answers from a script of status codes.
// Calls past the end of the script answer 200.
type fakeSender struct {
	mu       sync.Mutex
	statuses []int
	errs     map[int]error
	urls     []string

	// started receives once per call before blocking on release, if set.
	started chan struct{}
	release chan struct{}
	// ignoreCtx keeps blocking on release even after cancellation.
	ignoreCtx bool
}

func (f *fakeSender) Send(ctx context.Context, u string) (sender.Outcome, error) {
	f.mu.Lock()
	call := len(f.urls)
	f.urls = append(f.urls, u)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil && f.ignoreCtx {
		<-f.release
	} else if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return sender.Outcome{}, fmt.Errorf("%w: %v", domain.ErrTransport, ctx.Err())
		}
	}

	if err, ok := f.errs[call]; ok {
		return sender.Outcome{}, err
	}

	status := 200
	if call < len(f.statuses) {
		status = f.statuses[call]
	}
	out := sender.Outcome{StatusCode: status, Body: "body"}
	if status != 200 {
		return out, &domain.StatusError{StatusCode: status, Body: out.Body}
	}
	return out, nil
}

func (f *fakeSender) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

// devices returns the dev query parameter of every recorded request.
func (f *fakeSender) devices() []string {
	var out []string
	for _, raw := range f.URLs() {
		u, err := url.Parse(raw)
		if err != nil {
			panic(err)
		}
		out = append(out, u.Query().Get("dev"))
	}
	return out
}

// countingCallback counts terminal notifications.
type countingCallback struct {
	completed atomic.Int32
	failed    atomic.Int32
	done      chan struct{}
	once      sync.Once
}

func newCountingCallback() *countingCallback {
	return &countingCallback{done: make(chan struct{})}
}

func (c *countingCallback) OnComplete() {
	c.completed.Add(1)
	c.once.Do(func() { close(c.done) })
}

func (c *countingCallback) OnFailure() {
	c.failed.Add(1)
	c.once.Do(func() { close(c.done) })
}

func (c *countingCallback) total() int32 {
	return c.completed.Load() + c.failed.Load()
}

func (c *countingCallback) wait(d time.Duration) bool {
	select {
	case <-c.done:
		return true
	case <-time.After(d):
		return false
	}
}

var testEndpoint = domain.Endpoint{Host: "gts.example.com", Port: 8080, Path: "/gprmc/Data"}

func testFixes(n int) []domain.Fix {
	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	fixes := make([]domain.Fix, n)
	for i := range fixes {
		fixes[i] = domain.Fix{
			Time:      base.Add(time.Duration(i) * time.Second),
			Latitude:  45 + float64(i)/100,
			Longitude: -73,
			Altitude:  float64(10 + i),
			Speed:     float64(i),
			Bearing:   90,
		}
	}
	return fixes
}

func newTestJob(device string, n int, s *fakeSender, cb *countingCallback) *Job {
	return NewJob(JobSpec{
		Endpoint: testEndpoint,
		Identity: domain.Identity{DeviceID: device},
		Fixes:    testFixes(n),
		Sender:   s,
		Callback: cb,
	})
}
