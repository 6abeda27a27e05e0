package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/gtship/internal/app"
	"github.com/bft-labs/gtship/internal/cliconfig"
	"github.com/bft-labs/gtship/internal/domain"
	"github.com/bft-labs/gtship/internal/source"
	gtlog "github.com/bft-labs/gtship/pkg/log"
	"github.com/bft-labs/gtship/pkg/gtship"
)

// tally counts batch outcomes reported through the client callback.
type tally struct {
	log       zerolog.Logger
	delivered atomic.Int64
	failed    atomic.Int64
}

func (t *tally) OnComplete() {
	t.delivered.Add(1)
	t.log.Debug().Msg("batch delivered")
}

func (t *tally) OnFailure() {
	t.failed.Add(1)
	t.log.Warn().Msg("batch not delivered")
}

func (t *tally) total() int64 {
	return t.delivered.Load() + t.failed.Load()
}

// dryRunClient answers every request with 200 without touching the network.
type dryRunClient struct {
	log zerolog.Logger
}

func (c dryRunClient) Do(req *http.Request) (*http.Response, error) {
	c.log.Info().Str("url", req.URL.String()).Msg("dry run")
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("OK")),
		Request:    req,
	}, nil
}

func run(cfg cliconfig.Config, log zerolog.Logger) error {
	adapter := gtlog.NewZerologAdapterWithLogger(log)

	disp := gtship.NewDispatcher(cfg.QueueCapacity, adapter,
		gtship.WithShutdownTimeout(cfg.ShutdownTimeout))
	if err := disp.Start(context.Background()); err != nil {
		return fmt.Errorf("start dispatcher: %w", err)
	}

	outcomes := &tally{log: log}
	opts := []gtship.Option{gtship.WithLogger(adapter)}
	if cfg.DryRun {
		opts = append(opts, gtship.WithHTTPClient(dryRunClient{log: log}))
	}

	client, err := gtship.New(gtship.Config{
		Host:        cfg.Host,
		Port:        cfg.Port,
		Path:        cfg.Path,
		HTTPTimeout: cfg.HTTPTimeout,
	}, disp, outcomes, opts...)
	if err != nil {
		_ = disp.Stop()
		return fmt.Errorf("create client: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("received signal, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	fixes := make(chan domain.Fix, 64)
	produced := make(chan error, 1)
	go func() {
		defer close(fixes)
		produced <- produce(ctx, cfg, adapter, func(fix domain.Fix) error {
			select {
			case fixes <- fix:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	reporter := app.NewReporter(app.ReporterConfig{
		DeviceID:     cfg.DeviceID,
		AccountName:  cfg.AccountName,
		BatchSize:    cfg.BatchSize,
		SendInterval: cfg.SendInterval,
	}, client, adapter)

	runErr := reporter.Run(ctx, fixes)
	srcErr := <-produced

	// A finite source ended on its own: give queued batches a chance to land.
	if runErr == nil {
		waitForOutcomes(ctx, outcomes, int64(reporter.Batches()), cfg.ShutdownTimeout)
	}

	if err := disp.Stop(); err != nil {
		log.Warn().Err(err).Msg("dispatcher stop")
	}

	log.Info().
		Int("batches", reporter.Batches()).
		Int64("delivered", outcomes.delivered.Load()).
		Int64("failed", outcomes.failed.Load()).
		Msg("done")

	if srcErr != nil && !errors.Is(srcErr, context.Canceled) {
		return srcErr
	}
	return nil
}

// produce feeds fixes from the configured source to push until the source
// ends or ctx is canceled.
func produce(ctx context.Context, cfg cliconfig.Config, logger gtlog.Logger, push func(domain.Fix) error) error {
	switch {
	case cfg.NMEAFile != "":
		fixes, err := source.ReadFile(cfg.NMEAFile)
		if err != nil {
			return err
		}
		logger.Info("read nmea file",
			gtlog.String("file", cfg.NMEAFile),
			gtlog.Int("fixes", len(fixes)),
		)
		for _, fix := range fixes {
			if err := push(fix); err != nil {
				return err
			}
		}
		return nil

	case cfg.SerialPort != "":
		reader := source.NewSerialReader(source.SerialConfig{
			Port: cfg.SerialPort,
			Baud: cfg.SerialBaud,
		}, logger)
		return reader.Run(ctx, push)

	case cfg.WatchDir != "":
		w := source.NewWatcher(source.WatcherConfig{Dir: cfg.WatchDir}, logger)
		return w.Run(ctx, func(path string) {
			if err := reportSpoolFile(path, push); err != nil {
				logger.Error("spool file", gtlog.String("file", path), gtlog.Err(err))
			}
		})
	}
	return errors.New("no fix source configured")
}

// reportSpoolFile pushes every fix in path and renames it to path.done so it
// is not picked up again.
func reportSpoolFile(path string, push func(domain.Fix) error) error {
	fixes, err := source.ReadFile(path)
	if err != nil {
		return err
	}
	for _, fix := range fixes {
		if err := push(fix); err != nil {
			return err
		}
	}
	return os.Rename(path, path+".done")
}

func waitForOutcomes(ctx context.Context, t *tally, want int64, timeout time.Duration) {
	if t.total() >= want {
		return
	}
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(timeout)

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			return
		case <-ticker.C:
			if t.total() >= want {
				return
			}
		}
	}
}
