package gprmc

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/gtship/internal/domain"
)

func TestEncode_Golden(t *testing.T) {
	tests := []struct {
		name string
		fix  domain.Fix
		want string
	}{
		{
			name: "north west at rest",
			fix: domain.Fix{
				Time:      time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
				Latitude:  45.0,
				Longitude: -73.0,
				Altitude:  10,
			},
			want: "$GPRMC,000000,A,4500.00000N,07300.00000W,0.000000,0.000000,010121,,,*25",
		},
		{
			name: "north east moving",
			fix: domain.Fix{
				Time:      time.Date(1994, 3, 23, 12, 35, 19, 0, time.UTC),
				Latitude:  48.1173,
				Longitude: 11 + 31.0/60,
				Speed:     10,
				Bearing:   84.4,
			},
			want: "$GPRMC,123519,A,4807.03800N,01131.00000E,19.438445,84.400000,230394,,,*3B",
		},
		{
			name: "south east",
			fix: domain.Fix{
				Time:      time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
				Latitude:  -33.8688,
				Longitude: 151.2093,
				Speed:     3.5,
				Bearing:   271.25,
			},
			want: "$GPRMC,235959,A,3352.12800S,15112.55800E,6.803456,271.250000,311299,,,*27",
		},
		{
			name: "minutes carry into degrees",
			fix: domain.Fix{
				Time:      time.Date(2024, 6, 15, 1, 2, 3, 0, time.UTC),
				Latitude:  0.99999999,
				Longitude: -0.5,
				Bearing:   359.9999999,
			},
			want: "$GPRMC,010203,A,0100.00000N,00030.00000W,0.000000,360.000000,150624,,,*20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.fix)
			assert.Equal(t, tt.want, got)
			require.NoError(t, Verify(got))
		})
	}
}

func TestEncode_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	local := time.Date(2021, 1, 1, 5, 0, 0, 0, loc)
	utc := local.UTC()

	a := Encode(domain.Fix{Time: local, Latitude: 1, Longitude: 1})
	b := Encode(domain.Fix{Time: utc, Latitude: 1, Longitude: 1})

	assert.Equal(t, b, a)
	assert.True(t, strings.HasPrefix(a, "$GPRMC,000000,A,"), a)
	assert.Contains(t, a, ",010121,,,*")
}

func TestEncode_FromMillis(t *testing.T) {
	fix := domain.FixFromMillis(1609459200000, 45, -73, 10, 0, 0)
	assert.True(t, strings.HasPrefix(Encode(fix),
		"$GPRMC,000000,A,4500.00000N,07300.00000W,0.000000,0.000000,010121,,,*"))
}

func TestEncode_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		fix := domain.Fix{
			Time:      base.Add(time.Duration(rng.Int63n(int64(40 * 365 * 24 * time.Hour)))),
			Latitude:  rng.Float64()*180 - 90,
			Longitude: rng.Float64()*360 - 180,
			Altitude:  rng.Float64() * 4000,
			Speed:     rng.Float64() * 80,
			Bearing:   rng.Float64() * 360,
		}

		s := Encode(fix)
		require.Equal(t, s, Encode(fix), "encode must be deterministic")

		star := strings.LastIndexByte(s, '*')
		require.Equal(t, len(s)-3, star, s)

		var x byte
		for j := 1; j < star; j++ {
			x ^= s[j]
		}
		require.Equal(t, fmt.Sprintf("%02X", x), s[star+1:], s)

		fields := strings.Split(s[:star], ",")
		require.Len(t, fields, 11, s)

		latHemi := fields[3][len(fields[3])-1:]
		lonHemi := fields[4][len(fields[4])-1:]
		if fix.Latitude >= 0 {
			assert.Equal(t, "N", latHemi)
		} else {
			assert.Equal(t, "S", latHemi)
		}
		if fix.Longitude >= 0 {
			assert.Equal(t, "E", lonHemi)
		} else {
			assert.Equal(t, "W", lonHemi)
		}

		assert.Equal(t, fmt.Sprintf("%.6f", fix.Speed*KnotsPerMeterPerSecond), fields[5])
		assert.NotContains(t, s, "-", "magnitudes must be unsigned")
	}
}

func TestCoordinate(t *testing.T) {
	tests := []struct {
		deg   float64
		width int
		want  string
	}{
		{0, 2, "0000.00000"},
		{45.5, 2, "4530.00000"},
		{-45.5, 2, "4530.00000"},
		{9.25, 3, "00915.00000"},
		{179.999999999, 3, "18000.00000"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.deg), func(t *testing.T) {
			assert.Equal(t, tt.want, Coordinate(tt.deg, tt.width))
		})
	}
}

func TestHemisphere(t *testing.T) {
	assert.Equal(t, "N", Hemisphere(0, "N", "S"))
	assert.Equal(t, "N", Hemisphere(12.5, "N", "S"))
	assert.Equal(t, "S", Hemisphere(-0.0001, "N", "S"))
	assert.Equal(t, "W", Hemisphere(-73, "E", "W"))
}

func TestChecksum(t *testing.T) {
	// body of the documented example, everything between '$' and '*'
	assert.Equal(t, "25", Checksum("GPRMC,000000,A,4500.00000N,07300.00000W,0.000000,0.000000,010121,,,"))
	assert.Equal(t, "00", Checksum(""))
}

func TestVerify_RejectsCorruptSentence(t *testing.T) {
	s := Encode(domain.Fix{Time: time.Unix(0, 0), Latitude: 1, Longitude: 2})
	corrupt := strings.Replace(s, "0100.00000N", "0200.00000N", 1)

	require.NotEqual(t, s, corrupt)
	assert.Error(t, Verify(corrupt))
	assert.Error(t, Verify("GPRMC,no,dollar*00"))
}

func TestVerify(t *testing.T) {
	withSum := func(body string) string { return "$" + body + "*" + Checksum(body) }
	valid := Encode(domain.Fix{Time: time.Unix(1700000000, 0), Latitude: -33.5, Longitude: 151.25, Speed: 3})

	tests := []struct {
		name     string
		sentence string
		wantErr  bool
	}{
		{"encoded sentence", valid, false},
		{"documented example", "$GPRMC,000000,A,4500.00000N,07300.00000W,0.000000,0.000000,010121,,,*25", false},
		{"no checksum", strings.TrimSuffix(valid, valid[len(valid)-3:]), true},
		{"short checksum", valid[:len(valid)-1], true},
		{"wrong checksum", "$GPRMC,000000,A,4500.00000N,07300.00000W,0.000000,0.000000,010121,,,*26", true},
		{"other sentence type", withSum("GPGGA,000000,4500.000,N,07300.000,W,1,08,0.9,10.0,M,,,,"), true},
		{"other talker", withSum("GNRMC,000000,A,4500.00000N,07300.00000W,0.000000,0.000000,010121,,,"), true},
		{"empty prefix", withSum(",000000,A"), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.sentence)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEncodeFor_IgnoresIdentity(t *testing.T) {
	fix := domain.Fix{Time: time.Unix(1700000000, 0), Latitude: 10, Longitude: 20}
	a := EncodeFor(fix, domain.Identity{DeviceID: "a"})
	b := EncodeFor(fix, domain.Identity{DeviceID: "b", AccountName: "x"})
	assert.Equal(t, a, b)
	assert.Equal(t, Encode(fix), a)
}
