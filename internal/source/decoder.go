package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/adrianmo/go-nmea"

	"github.com/bft-labs/gtship/internal/domain"
	"github.com/bft-labs/gtship/internal/ports"
	"github.com/bft-labs/gtship/pkg/gprmc"
	"github.com/bft-labs/gtship/pkg/log"
)

// maxLineBytes caps a single NMEA line. Real sentences are at most 82 bytes.
const maxLineBytes = 4 << 10

// Stats counts what a Decoder has seen.
type Stats struct {
	Lines   int
	Fixes   int
	Skipped int
}

// Decoder turns NMEA sentences into fixes. It is not safe for concurrent use.
type Decoder struct {
	logger   ports.Logger
	altitude float64
	stats    Stats
}

// NewDecoder creates a decoder. A nil logger discards logs.
func NewDecoder(logger ports.Logger) *Decoder {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Decoder{logger: logger}
}

// Decode consumes one line. It returns a fix when the line is a valid RMC
// sentence. GGA sentences update the altitude attached to later fixes;
// everything else is skipped.
func (d *Decoder) Decode(line string) (domain.Fix, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.Fix{}, false
	}
	d.stats.Lines++

	if !strings.HasPrefix(line, "$") {
		d.stats.Skipped++
		return domain.Fix{}, false
	}

	s, err := nmea.Parse(line)
	if err != nil {
		d.stats.Skipped++
		d.logger.Debug("skipping unparsable sentence", ports.String("line", line), ports.Err(err))
		return domain.Fix{}, false
	}

	switch s.DataType() {
	case nmea.TypeGGA:
		gga := s.(nmea.GGA)
		if gga.FixQuality != nmea.Invalid {
			d.altitude = gga.Altitude
		}
		return domain.Fix{}, false

	case nmea.TypeRMC:
		rmc := s.(nmea.RMC)
		fix, err := fixFromRMC(rmc, d.altitude)
		if err != nil {
			d.stats.Skipped++
			d.logger.Debug("skipping rmc", ports.String("line", line), ports.Err(err))
			return domain.Fix{}, false
		}
		d.stats.Fixes++
		return fix, true

	default:
		d.stats.Skipped++
		return domain.Fix{}, false
	}
}

// Stats returns counters accumulated since the decoder was created.
func (d *Decoder) Stats() Stats {
	return d.stats
}

func fixFromRMC(rmc nmea.RMC, altitude float64) (domain.Fix, error) {
	if rmc.Validity != nmea.ValidRMC {
		return domain.Fix{}, fmt.Errorf("status %q is not a valid fix", rmc.Validity)
	}
	if !rmc.Time.Valid || !rmc.Date.Valid {
		return domain.Fix{}, fmt.Errorf("missing date or time")
	}

	return domain.Fix{
		Time:      rmcTime(rmc.Date, rmc.Time),
		Latitude:  rmc.Latitude,
		Longitude: rmc.Longitude,
		Altitude:  altitude,
		Speed:     rmc.Speed / gprmc.KnotsPerMeterPerSecond,
		Bearing:   rmc.Course,
	}, nil
}

// rmcTime combines the two-digit RMC date with the time of day, in UTC.
// Years 80-99 are taken as 19xx.
func rmcTime(d nmea.Date, t nmea.Time) time.Time {
	year := 2000 + d.YY
	if d.YY >= 80 {
		year = 1900 + d.YY
	}
	return time.Date(year, time.Month(d.MM), d.DD,
		t.Hour, t.Minute, t.Second, t.Millisecond*int(time.Millisecond), time.UTC)
}

// Stream decodes r line by line and calls fn for every fix, in input order.
// It returns when r is exhausted, fn fails, or ctx is canceled.
func Stream(ctx context.Context, r io.Reader, dec *Decoder, fn func(domain.Fix) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fix, ok := dec.Decode(scanner.Text())
		if !ok {
			continue
		}
		if err := fn(fix); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read nmea: %w", err)
	}
	return nil
}

// ReadFile returns every fix in an NMEA log file.
func ReadFile(path string) ([]domain.Fix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open nmea file: %w", err)
	}
	defer f.Close()

	var fixes []domain.Fix
	err = Stream(context.Background(), f, NewDecoder(nil), func(fix domain.Fix) error {
		fixes = append(fixes, fix)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fixes, nil
}
