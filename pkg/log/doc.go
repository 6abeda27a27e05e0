// Package log provides a logging abstraction for gtship components.
//
// This package defines a Logger interface that can be implemented by
// any logging library. Default implementations are provided for zerolog
// and a no-op logger for testing.
//
// # Usage
//
// Use the provided zerolog adapter:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//
// Or use the no-op logger for testing:
//
//	logger := log.NewNoopLogger()
//
// Diagnostics for failed sends (status code, response body, network error)
// only ever surface through a Logger.
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.1.0
package log
