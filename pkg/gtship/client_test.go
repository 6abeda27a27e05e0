package gtship

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bft-labs/gtship/pkg/gprmc"
)

// collector is an httptest server that records every query it receives and
// answers from a status script.
type collector struct {
	mu       sync.Mutex
	queries  []string
	statuses []int
	server   *httptest.Server
}

func newCollector(t *testing.T, statuses ...int) *collector {
	t.Helper()
	c := &collector{statuses: statuses}
	c.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/gprmc/Data" {
			t.Errorf("path = %s, want /gprmc/Data", r.URL.Path)
		}

		c.mu.Lock()
		n := len(c.queries)
		c.queries = append(c.queries, r.URL.RawQuery)
		c.mu.Unlock()

		status := http.StatusOK
		if n < len(c.statuses) {
			status = c.statuses[n]
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte("OK"))
	}))
	t.Cleanup(c.server.Close)
	return c
}

func (c *collector) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

func (c *collector) config(t *testing.T) Config {
	t.Helper()
	u, err := url.Parse(c.server.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Host = u.Hostname()
	cfg.Port = port
	cfg.Path = "/gprmc/Data"
	return cfg
}

type outcomes struct {
	completed atomic.Int32
	failed    atomic.Int32
	done      chan struct{}
}

func newOutcomes(buffer int) *outcomes {
	return &outcomes{done: make(chan struct{}, buffer)}
}

func (o *outcomes) callback() CallbackFuncs {
	return CallbackFuncs{
		Complete: func() { o.completed.Add(1); o.done <- struct{}{} },
		Failure:  func() { o.failed.Add(1); o.done <- struct{}{} },
	}
}

func (o *outcomes) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-o.done:
		case <-time.After(5 * time.Second):
			t.Fatalf("only %d of %d callbacks arrived", i, n)
		}
	}
}

func sampleFixes(n int) []Fix {
	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	fixes := make([]Fix, n)
	for i := range fixes {
		fixes[i] = Fix{
			Time:      base.Add(time.Duration(i) * time.Minute),
			Latitude:  45,
			Longitude: -73,
			Altitude:  100.5,
			Speed:     float64(i),
		}
	}
	return fixes
}

func TestClient_SendLocationsDelivered(t *testing.T) {
	col := newCollector(t)
	out := newOutcomes(4)

	client, err := New(col.config(t), NewInlineDispatcher(context.Background()), out.callback())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	fixes := sampleFixes(3)
	client.SendLocations("truck 7", "fleet", fixes)
	out.wait(t, 1)

	if out.completed.Load() != 1 || out.failed.Load() != 0 {
		t.Fatalf("completed=%d failed=%d, want 1/0", out.completed.Load(), out.failed.Load())
	}

	queries := col.Queries()
	if len(queries) != 3 {
		t.Fatalf("collector saw %d requests, want 3", len(queries))
	}
	for i, raw := range queries {
		if !strings.HasPrefix(raw, "id=truck+7&dev=truck+7&acct=fleet&code=0xF020&gprmc=") {
			t.Errorf("query %d has wrong parameter layout: %s", i, raw)
		}
		if !strings.HasSuffix(raw, "&alt=100.5") {
			t.Errorf("query %d: alt missing or misplaced: %s", i, raw)
		}
		q, _ := url.ParseQuery(raw)
		if got, want := q.Get("gprmc"), gprmc.Encode(fixes[i]); got != want {
			t.Errorf("query %d gprmc = %s, want %s", i, got, want)
		}
	}
}

func TestClient_AccountDefaultsToDeviceID(t *testing.T) {
	col := newCollector(t)
	client, err := New(col.config(t), NewInlineDispatcher(context.Background()), nil)
	if err != nil {
		t.Fatal(err)
	}

	client.SendLocation("dev-1", "  ", sampleFixes(1)[0])

	queries := col.Queries()
	if len(queries) != 1 {
		t.Fatalf("got %d requests, want 1", len(queries))
	}
	q, _ := url.ParseQuery(queries[0])
	if q.Get("acct") != "dev-1" {
		t.Errorf("acct = %q, want dev-1", q.Get("acct"))
	}
}

func TestClient_FailureStopsBatch(t *testing.T) {
	col := newCollector(t, http.StatusOK, http.StatusInternalServerError)
	out := newOutcomes(4)

	client, err := New(col.config(t), NewInlineDispatcher(context.Background()), out.callback())
	if err != nil {
		t.Fatal(err)
	}

	client.SendLocations("dev-1", "", sampleFixes(3))
	out.wait(t, 1)

	if out.failed.Load() != 1 || out.completed.Load() != 0 {
		t.Errorf("completed=%d failed=%d, want 0/1", out.completed.Load(), out.failed.Load())
	}
	if n := len(col.Queries()); n != 2 {
		t.Errorf("collector saw %d requests, want 2", n)
	}
}

func TestClient_SharedDispatcher(t *testing.T) {
	col := newCollector(t)
	disp := NewDispatcher(DefaultQueueCapacity, nil)
	if err := disp.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer disp.Stop()

	outA, outB := newOutcomes(8), newOutcomes(8)
	a, err := New(col.config(t), disp, outA.callback())
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(col.config(t), disp, outB.callback())
	if err != nil {
		t.Fatal(err)
	}

	a.SendLocations("a", "", sampleFixes(2))
	b.SendLocations("b", "", sampleFixes(2))
	a.SendLocations("a", "", nil)

	outA.wait(t, 2)
	outB.wait(t, 1)

	if outA.completed.Load() != 2 || outB.completed.Load() != 1 {
		t.Errorf("completions a=%d b=%d, want 2/1", outA.completed.Load(), outB.completed.Load())
	}
	if n := len(col.Queries()); n != 4 {
		t.Errorf("collector saw %d requests, want 4", n)
	}
}

func TestClient_StoppedDispatcherFailsImmediately(t *testing.T) {
	col := newCollector(t)
	out := newOutcomes(1)

	client, err := New(col.config(t), NewDispatcher(1, nil), out.callback())
	if err != nil {
		t.Fatal(err)
	}

	client.SendLocation("dev-1", "", sampleFixes(1)[0])

	if out.failed.Load() != 1 {
		t.Errorf("failed = %d, want 1 before SendLocation returns", out.failed.Load())
	}
	if n := len(col.Queries()); n != 0 {
		t.Errorf("collector saw %d requests, want 0", n)
	}
}

func TestClient_SendRawIsNoop(t *testing.T) {
	col := newCollector(t)
	out := newOutcomes(1)

	client, err := New(col.config(t), NewInlineDispatcher(context.Background()), out.callback())
	if err != nil {
		t.Fatal(err)
	}
	client.SendRaw("dev-1", sampleFixes(1)[0])

	if out.completed.Load()+out.failed.Load() != 0 {
		t.Error("SendRaw must not invoke the callback")
	}
	if n := len(col.Queries()); n != 0 {
		t.Errorf("collector saw %d requests, want 0", n)
	}
}

type recordingHTTPClient struct {
	calls atomic.Int32
}

func (r *recordingHTTPClient) Do(req *http.Request) (*http.Response, error) {
	r.calls.Add(1)
	return nil, errors.New("offline")
}

func TestClient_WithHTTPClient(t *testing.T) {
	hc := &recordingHTTPClient{}
	out := newOutcomes(1)

	cfg := DefaultConfig()
	cfg.Host = "gts.invalid"
	client, err := New(cfg, NewInlineDispatcher(context.Background()), out.callback(),
		WithHTTPClient(hc), WithLogger(nil))
	if err != nil {
		t.Fatal(err)
	}

	client.SendLocation("dev-1", "", sampleFixes(1)[0])

	if hc.calls.Load() != 1 {
		t.Errorf("injected client called %d times, want 1", hc.calls.Load())
	}
	if out.failed.Load() != 1 {
		t.Errorf("failed = %d, want 1", out.failed.Load())
	}
}

func TestNew_Validation(t *testing.T) {
	inline := NewInlineDispatcher(context.Background())

	tests := []struct {
		name string
		cfg  Config
		disp Submitter
	}{
		{"missing host", Config{}, inline},
		{"scheme in host", Config{Host: "http://gts.example.com"}, inline},
		{"port out of range", Config{Host: "gts", Port: 70000}, inline},
		{"relative path", Config{Host: "gts", Path: "gprmc"}, inline},
		{"nil dispatcher", Config{Host: "gts"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, tt.disp, nil)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if cfg.HTTPTimeout != DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want %v", cfg.HTTPTimeout, DefaultHTTPTimeout)
	}

	cfg.Host = " gts.example.com "
	cfg.Port = 8080
	ep := cfg.Endpoint()
	if ep.Host != "gts.example.com" || ep.Port != 8080 || ep.Path != "" {
		t.Errorf("Endpoint() = %+v", ep)
	}
}

func TestValidateModuleVersions(t *testing.T) {
	if err := validateModuleVersions(); err != nil {
		t.Fatalf("validateModuleVersions() = %v", err)
	}

	tests := []struct {
		version, min string
		wantErr      bool
	}{
		{"1.0.0", "1.0.0", false},
		{"2.1.0", "2.0.5", false},
		{"1.9.9", "2.0.0", true},
		{"not-a-version", "1.0.0", true},
	}
	for _, tt := range tests {
		err := checkVersion(moduleVersion{"test", tt.version, tt.min})
		if (err != nil) != tt.wantErr {
			t.Errorf("checkVersion(%s, %s) error = %v, wantErr %v", tt.version, tt.min, err, tt.wantErr)
		}
	}
}
