package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/gtship/internal/ports"
	"github.com/bft-labs/gtship/pkg/log"
)

// DefaultSpoolPattern selects the files a Watcher reports.
const DefaultSpoolPattern = "*.nmea"

// WatcherConfig configures a spool directory watcher.
type WatcherConfig struct {
	Dir string

	// Pattern is a filepath.Match pattern applied to base names.
	// Default: *.nmea
	Pattern string

	// DebounceDelay is how long a file must be quiet before it is reported.
	// Default: 200 milliseconds
	DebounceDelay time.Duration
}

// Watcher reports spool files once writes to them settle.
type Watcher struct {
	dir      string
	pattern  string
	debounce time.Duration
	logger   ports.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher. A nil logger discards logs.
func NewWatcher(cfg WatcherConfig, logger ports.Logger) *Watcher {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultSpoolPattern
	}
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 200 * time.Millisecond
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		dir:      cfg.Dir,
		pattern:  cfg.Pattern,
		debounce: cfg.DebounceDelay,
		logger:   logger.With(ports.String("dir", cfg.Dir)),
		pending:  make(map[string]*time.Timer),
	}
}

// Run reports files already in the directory, then every file created or
// written while running. fn is called from one goroutine at a time.
// Run blocks until ctx is canceled.
func (w *Watcher) Run(ctx context.Context, fn func(path string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	var fnMu sync.Mutex
	report := func(path string) {
		if _, err := os.Stat(path); err != nil {
			return
		}
		fnMu.Lock()
		defer fnMu.Unlock()
		fn(path)
	}

	existing, err := w.existing()
	if err != nil {
		return err
	}
	for _, path := range existing {
		report(path)
	}

	defer w.stopPending()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			w.schedule(event.Name, report)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("spool watcher error", ports.Err(err))
		}
	}
}

func (w *Watcher) matches(path string) bool {
	ok, err := filepath.Match(w.pattern, filepath.Base(path))
	return err == nil && ok
}

func (w *Watcher) existing() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(w.dir, w.pattern))
	if err != nil {
		return nil, fmt.Errorf("list spool: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// schedule restarts the quiet period for path.
func (w *Watcher) schedule(path string, report func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		if t.Stop() {
			w.wg.Done()
		}
	}

	w.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.pending[path] == t {
			delete(w.pending, path)
		}
		w.mu.Unlock()
		report(path)
	})
	w.pending[path] = t
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	for path, t := range w.pending {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
	w.mu.Unlock()
	w.wg.Wait()
}
