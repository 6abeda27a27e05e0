package sender

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bft-labs/gtship/internal/domain"
)

// DeviceCode is the OpenGTS status code sent with every fix.
const DeviceCode = "0xF020"

// BaseURL returns http://host[:port][path] for the endpoint.
func BaseURL(ep domain.Endpoint) string {
	return "http://" + ep.Authority()
}

// BuildRequestURL composes the GET URL for a single fix.
// Parameters are emitted in the order id, dev, acct, code, gprmc, alt,
// each value query-escaped on its own.
func BuildRequestURL(ep domain.Endpoint, id domain.Identity, sentence string, altitude float64) (string, error) {
	if strings.TrimSpace(ep.Host) == "" {
		return "", fmt.Errorf("%w: empty host", domain.ErrEncoding)
	}
	for name, v := range map[string]string{"id": id.DeviceID, "acct": id.AccountName, "gprmc": sentence} {
		if !utf8.ValidString(v) {
			return "", fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrEncoding, name)
		}
	}

	var b strings.Builder
	b.WriteString(BaseURL(ep))
	b.WriteString("?id=")
	b.WriteString(url.QueryEscape(id.DeviceID))
	b.WriteString("&dev=")
	b.WriteString(url.QueryEscape(id.DeviceID))
	b.WriteString("&acct=")
	b.WriteString(url.QueryEscape(id.Account()))
	b.WriteString("&code=")
	b.WriteString(DeviceCode)
	b.WriteString("&gprmc=")
	b.WriteString(url.QueryEscape(sentence))
	b.WriteString("&alt=")
	b.WriteString(url.QueryEscape(strconv.FormatFloat(altitude, 'f', -1, 64)))

	raw := b.String()
	if _, err := url.ParseRequestURI(raw); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	return raw, nil
}
