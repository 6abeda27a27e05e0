package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/bft-labs/gtship/internal/domain"
	"github.com/bft-labs/gtship/internal/ports"
	"github.com/bft-labs/gtship/pkg/log"
)

// DefaultBaud is the NMEA 0183 standard rate.
const DefaultBaud = 4800

// SerialConfig describes a serial GPS receiver.
type SerialConfig struct {
	Port string
	Baud int

	// ReconnectMin and ReconnectMax bound the delay between reopen attempts.
	ReconnectMin time.Duration
	ReconnectMax time.Duration
}

// OpenSerial opens the receiver's port.
func OpenSerial(cfg SerialConfig) (io.ReadWriteCloser, error) {
	if cfg.Port == "" {
		return nil, errors.New("serial port is required")
	}
	baud := cfg.Baud
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{Name: cfg.Port, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Port, err)
	}
	return port, nil
}

// SerialReader streams fixes from a receiver and reopens the port when it
// fails, backing off between attempts.
type SerialReader struct {
	cfg    SerialConfig
	open   func(SerialConfig) (io.ReadWriteCloser, error)
	logger ports.Logger
}

// NewSerialReader creates a reader for cfg. A nil logger discards logs.
func NewSerialReader(cfg SerialConfig, logger ports.Logger) *SerialReader {
	if cfg.ReconnectMin <= 0 {
		cfg.ReconnectMin = time.Second
	}
	if cfg.ReconnectMax <= 0 {
		cfg.ReconnectMax = 30 * time.Second
	}
	if cfg.ReconnectMax < cfg.ReconnectMin {
		cfg.ReconnectMax = cfg.ReconnectMin
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &SerialReader{
		cfg:    cfg,
		open:   OpenSerial,
		logger: logger.With(ports.String("port", cfg.Port)),
	}
}

// Run calls fn for every decoded fix until ctx is canceled or fn fails.
func (s *SerialReader) Run(ctx context.Context, fn func(domain.Fix) error) error {
	backoff := NewBackoff(s.cfg.ReconnectMin, s.cfg.ReconnectMax)
	dec := NewDecoder(s.logger)

	for {
		port, err := s.open(s.cfg)
		if err != nil {
			s.logger.Warn("serial open failed",
				ports.Err(err),
				ports.Duration("retry_in", backoff.Current()),
			)
			if werr := backoff.Wait(ctx); werr != nil {
				return werr
			}
			continue
		}

		s.logger.Info("serial port opened")
		backoff.Reset()

		err = s.stream(ctx, port, dec, fn)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var stop *stopError
		if errors.As(err, &stop) {
			return stop.err
		}

		s.logger.Warn("serial stream ended, reopening",
			ports.Err(err),
			ports.Duration("retry_in", backoff.Current()),
		)
		if werr := backoff.Wait(ctx); werr != nil {
			return werr
		}
	}
}

// stopError marks an error returned by the caller's fn, which ends Run.
type stopError struct{ err error }

func (e *stopError) Error() string { return e.err.Error() }

func (s *SerialReader) stream(ctx context.Context, port io.ReadCloser, dec *Decoder, fn func(domain.Fix) error) error {
	// Reads block until data arrives; closing the port unblocks them.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = port.Close()
	}()

	err := Stream(ctx, port, dec, func(fix domain.Fix) error {
		if err := fn(fix); err != nil {
			return &stopError{err: err}
		}
		return nil
	})
	if err == nil {
		err = io.EOF
	}
	return err
}
