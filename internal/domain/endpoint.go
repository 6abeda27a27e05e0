package domain

import "strconv"

// Endpoint is the collector address. It is fixed for the lifetime of a client.
type Endpoint struct {
	// Host is the collector hostname or IP, without scheme.
	Host string

	// Port is omitted from the URL when zero.
	Port int

	// Path is omitted from the URL when empty (e.g. "/gprmc/Data").
	Path string
}

// Authority returns host[:port][path] without the scheme.
func (e Endpoint) Authority() string {
	s := e.Host
	if e.Port != 0 {
		s += ":" + strconv.Itoa(e.Port)
	}
	return s + e.Path
}
