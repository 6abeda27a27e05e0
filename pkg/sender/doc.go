// Package sender delivers encoded fixes to an OpenGTS collector over HTTP.
//
// Every fix becomes one GET request:
//
//	http://host[:port][path]?id=ID&dev=ID&acct=ACCOUNT&code=0xF020&gprmc=SENTENCE&alt=ALT
//
// Build the URL with [BuildRequestURL] and deliver it with [HTTPSender.Send]:
//
//	s := sender.NewHTTPSender(&http.Client{Timeout: 15 * time.Second}, logger)
//	u, err := sender.BuildRequestURL(endpoint, identity, gprmc.Encode(fix), fix.Altitude)
//	if err != nil {
//	    return err
//	}
//	out, err := s.Send(ctx, u)
//
// There is no retry: each call is exactly one attempt. Status 200 is the only
// success; anything else comes back as a *domain.StatusError with the body
// attached for logging.
//
// # Version
//
// Current version: 2.0.0
// Minimum compatible version: 2.0.0
package sender
