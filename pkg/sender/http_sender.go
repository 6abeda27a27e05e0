package sender

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bft-labs/gtship/internal/domain"
	"github.com/bft-labs/gtship/pkg/log"
)

// maxBodyBytes caps how much of a response body is kept for diagnostics.
const maxBodyBytes = 64 << 10

// HTTPSender implements Sender with a plain HTTP GET.
type HTTPSender struct {
	client HTTPClient
	logger log.Logger
}

// NewHTTPSender creates a new HTTP sender.
func NewHTTPSender(client HTTPClient, logger log.Logger) *HTTPSender {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &HTTPSender{
		client: client,
		logger: logger,
	}
}

// Send issues one GET with no body. Only status 200 counts as delivered.
func (s *HTTPSender) Send(ctx context.Context, url string) (Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: create request: %v", domain.ErrTransport, err)
	}

	s.logger.Debug("sending fix", log.String("url", url))

	resp, err := s.client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	out := Outcome{StatusCode: resp.StatusCode, Body: string(body)}
	if readErr != nil {
		s.logger.Debug("read response body", log.Err(readErr))
	}

	if !out.OK() {
		return out, &domain.StatusError{StatusCode: out.StatusCode, Body: out.Body}
	}

	s.logger.Debug("collector accepted fix",
		log.Int("status", out.StatusCode),
		log.String("body", out.Body),
	)
	return out, nil
}

// Ensure HTTPSender implements Sender.
var _ Sender = (*HTTPSender)(nil)
