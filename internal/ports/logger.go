package ports

import "github.com/bft-labs/gtship/pkg/log"

// Logger is the structured logging port. See pkg/log for adapters.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors, re-exported so the application layer only imports ports.
var (
	String   = log.String
	Int      = log.Int
	Float64  = log.Float64
	Duration = log.Duration
	Time     = log.Time
	Err      = log.Err
)
