// Package httpserver runs an http.Handler with graceful shutdown. It
// exists to host the dev notification service, wiring signal handling,
// timeouts, and drain behavior in one place.
//
//	srv := httpserver.New(httpserver.WithAddr(":8089"))
//	if err := srv.Run(ctx, devserver.New()); err != nil {
//	    log.Fatal(err)
//	}
package httpserver
