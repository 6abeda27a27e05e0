package ports

import "github.com/bft-labs/gtship/pkg/sender"

// HTTPClient abstracts HTTP operations for dependency injection.
// The standard *http.Client satisfies this interface.
type HTTPClient = sender.HTTPClient
