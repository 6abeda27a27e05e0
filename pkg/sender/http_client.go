package sender

import "net/http"

// HTTPClient performs the collector GETs. *http.Client satisfies it; the
// CLI's dry-run mode and the tests substitute clients that never dial.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
