// Package gtship reports device locations to an OpenGTS collector using the
// $GPRMC GET protocol.
//
// Example usage:
//
//	disp := gtship.NewDispatcher(0, nil)
//	if err := disp.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer disp.Stop()
//
//	cfg := gtship.DefaultConfig()
//	cfg.Host = "gts.example.com"
//	client, err := gtship.New(cfg, disp, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client.SendLocation("truck-7", "", fix)
//
// The implementation lives in github.com/bft-labs/gtship/pkg/gtship; this
// package re-exports it for convenience.
package gtship

import (
	"github.com/bft-labs/gtship/pkg/gprmc"
	"github.com/bft-labs/gtship/pkg/gtship"
)

// Config describes the collector endpoint.
type Config = gtship.Config

// Client sends location batches to one collector.
type Client = gtship.Client

// Fix is one positional sample.
type Fix = gtship.Fix

// Callback receives one terminal outcome per batch.
type Callback = gtship.Callback

// CallbackFuncs adapts two functions to Callback.
type CallbackFuncs = gtship.CallbackFuncs

// Dispatcher is the bounded single-worker queue shared by clients.
type Dispatcher = gtship.Dispatcher

// Option configures a Client.
type Option = gtship.Option

// New creates a client. See gtship.New in pkg/gtship.
func New(cfg Config, dispatcher gtship.Submitter, callback Callback, opts ...Option) (*Client, error) {
	return gtship.New(cfg, dispatcher, callback, opts...)
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return gtship.DefaultConfig()
}

// NewDispatcher creates a stopped dispatcher with the given queue capacity.
func NewDispatcher(capacity int, logger gtship.Logger) *Dispatcher {
	return gtship.NewDispatcher(capacity, logger)
}

// EncodeGPRMC returns the $GPRMC sentence for a fix.
func EncodeGPRMC(fix Fix) string {
	return gprmc.Encode(fix)
}

// Re-exported options.
var (
	WithHTTPClient = gtship.WithHTTPClient
	WithLogger     = gtship.WithLogger
)
