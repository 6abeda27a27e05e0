// Package gtship reports device locations to an OpenGTS-compatible collector.
//
// Every fix is encoded as a legacy $GPRMC sentence and delivered with one
// HTTP GET to the collector's gprmc endpoint. Delivery runs on a shared
// background [Dispatcher] so callers never block on the network; the outcome
// of each batch arrives once, through the client's [Callback].
//
// # Basic Usage
//
//	disp := gtship.NewDispatcher(gtship.DefaultQueueCapacity, nil)
//	if err := disp.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer disp.Stop()
//
//	cfg := gtship.DefaultConfig()
//	cfg.Host = "gts.example.com"
//	cfg.Port = 8080
//	cfg.Path = "/gprmc/Data"
//
//	client, err := gtship.New(cfg, disp, gtship.CallbackFuncs{
//	    Complete: func() { fmt.Println("batch delivered") },
//	    Failure:  func() { fmt.Println("batch failed") },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client.SendLocation("truck-7", "fleet", fix)
//
// # Delivery Semantics
//
// Fixes of one batch are sent in order, one attempt each. The first failure
// ends the batch and the remaining fixes are not sent. A batch that cannot be
// queued because the dispatcher is full or stopped fails immediately.
// There is no retry and no persistence of undelivered fixes.
//
// # Logging
//
// Status codes, response bodies and error detail are logged through the
// optional [WithLogger] logger; the callback only carries success or failure.
package gtship
