package log

import "time"

// Logger is the structured logger the client, the dispatcher and its jobs
// write to. The library defaults to NoopLogger; the CLI passes a zerolog
// adapter.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child logger that adds fields to every message, used
	// to tag everything a job logs with its id and device.
	With(fields ...Field) Logger
}

// Field is one key/value attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Float64 is used for coordinates; zerolog keeps full precision.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Time is rendered in zerolog's configured time format.
func Time(key string, value time.Time) Field { return Field{Key: key, Value: value} }

// Err always uses the key "error".
func Err(err error) Field { return Field{Key: "error", Value: err} }
