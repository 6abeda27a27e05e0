package gprmc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/bft-labs/gtship/internal/domain"
)

const (
	// Tag is the sentence type prefix.
	Tag = "$GPRMC"

	// StatusValid is the RMC status flag for an active (valid) fix.
	StatusValid = "A"

	// KnotsPerMeterPerSecond converts m/s to knots.
	KnotsPerMeterPerSecond = 1.94384449

	timeLayout = "150405"
	dateLayout = "020106"
)

// Encode renders a fix as an OpenGTS GPRMC sentence, checksum included.
// The result depends only on the fix; identical fixes give identical sentences.
func Encode(fix domain.Fix) string {
	t := fix.Time.UTC()

	var b strings.Builder
	b.Grow(96)
	b.WriteString(Tag)
	b.WriteByte(',')
	b.WriteString(t.Format(timeLayout))
	b.WriteByte(',')
	b.WriteString(StatusValid)
	b.WriteByte(',')
	b.WriteString(Coordinate(fix.Latitude, 2))
	b.WriteString(Hemisphere(fix.Latitude, "N", "S"))
	b.WriteByte(',')
	b.WriteString(Coordinate(fix.Longitude, 3))
	b.WriteString(Hemisphere(fix.Longitude, "E", "W"))
	b.WriteByte(',')
	b.WriteString(decimal6(Knots(fix.Speed)))
	b.WriteByte(',')
	b.WriteString(decimal6(fix.Bearing))
	b.WriteByte(',')
	b.WriteString(t.Format(dateLayout))
	b.WriteString(",,,")

	body := b.String()
	return body + "*" + Checksum(body[1:])
}

// EncodeFor is Encode with the reporting identity alongside the fix.
// The identity travels in the query string, not in the sentence.
func EncodeFor(fix domain.Fix, _ domain.Identity) string {
	return Encode(fix)
}

// Coordinate formats the magnitude of a decimal-degree value as
// degrees (zero-padded to degWidth) followed by MM.MMMMM minutes.
func Coordinate(deg float64, degWidth int) string {
	abs := math.Abs(deg)
	whole := math.Floor(abs)
	minutes := math.Round((abs-whole)*60*1e5) / 1e5
	if minutes >= 60 {
		whole++
		minutes -= 60
	}
	return fmt.Sprintf("%0*d%08.5f", degWidth, int64(whole), minutes)
}

// Hemisphere returns pos for non-negative values and neg otherwise.
func Hemisphere(deg float64, pos, neg string) string {
	if deg >= 0 {
		return pos
	}
	return neg
}

// Knots converts meters per second to knots.
func Knots(mps float64) float64 {
	return mps * KnotsPerMeterPerSecond
}

// Checksum XORs every byte of body and renders two uppercase hex digits.
// body excludes the leading '$' and the '*' separator.
func Checksum(body string) string {
	return nmea.Checksum(body)
}

// Verify checks a sentence's framing, tag and checksum. Field contents are
// not parsed: go-nmea's RMC parser wants the hemisphere in a field of its
// own, which this layout does not have.
func Verify(sentence string) error {
	if !strings.HasPrefix(sentence, nmea.SentenceStart) {
		return fmt.Errorf("verify sentence: missing %q", nmea.SentenceStart)
	}
	star := strings.LastIndex(sentence, nmea.ChecksumSep)
	if star < 0 || len(sentence)-star != 3 {
		return fmt.Errorf("verify sentence: missing checksum")
	}

	body := sentence[len(nmea.SentenceStart):star]
	if got, want := sentence[star+1:], nmea.Checksum(body); got != want {
		return fmt.Errorf("verify sentence: checksum %s, want %s", got, want)
	}

	prefix, _, _ := strings.Cut(body, nmea.FieldSep)
	talker, typ, err := nmea.ParsePrefix(prefix)
	if err != nil {
		return fmt.Errorf("verify sentence: %w", err)
	}
	if nmea.SentenceStart+talker+typ != Tag {
		return fmt.Errorf("verify sentence: unexpected type %q", prefix)
	}
	return nil
}

// decimal6 is locale-invariant fixed-point with six decimals.
func decimal6(v float64) string {
	if v == 0 {
		// avoid "-0.000000"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
