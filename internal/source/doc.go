// Package source produces location fixes for the CLI.
//
// Fixes come from NMEA 0183 text: log files, a serial GPS receiver, or files
// dropped into a watched spool directory. Decoding is done by go-nmea; only
// valid RMC sentences yield a fix, and GGA sentences contribute altitude.
package source
