package domain

import "time"

// Fix is a single timestamped position/velocity/bearing reading.
// Fixes are supplied by a location source and are never modified by gtship.
type Fix struct {
	// Time is the instant the fix was taken. It is always rendered in UTC.
	Time time.Time

	// Latitude in signed decimal degrees (negative is south)
	Latitude float64

	// Longitude in signed decimal degrees (negative is west)
	Longitude float64

	// Altitude in meters
	Altitude float64

	// Speed over ground in meters per second
	Speed float64

	// Bearing in degrees, 0-360
	Bearing float64
}

// FixFromMillis builds a Fix from an epoch-milliseconds timestamp.
func FixFromMillis(ms int64, lat, lon, alt, speed, bearing float64) Fix {
	return Fix{
		Time:      time.UnixMilli(ms).UTC(),
		Latitude:  lat,
		Longitude: lon,
		Altitude:  alt,
		Speed:     speed,
		Bearing:   bearing,
	}
}

// UnixMilli returns the fix timestamp as epoch milliseconds.
func (f Fix) UnixMilli() int64 {
	return f.Time.UnixMilli()
}
