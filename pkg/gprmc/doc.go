// Package gprmc encodes position fixes as the GPRMC sentence understood by
// OpenGTS "gprmc" HTTP receivers.
//
// Layout:
//
//	$GPRMC,HHMMSS,A,DDMM.MMMMM{N|S},DDDMM.MMMMM{E|W},knots,bearing,DDMMYY,,,*XX
//
// Speed and bearing use six decimals with '.' as separator regardless of
// process locale. XX is the XOR of every byte between '$' and '*'.
package gprmc
