// Package httpserver runs an http.Handler with configured timeouts and
// graceful shutdown.
//
// Run blocks until its context is cancelled or the process receives
// SIGINT/SIGTERM, then calls http.Server.Shutdown bounded by the shutdown
// timeout so in-flight submissions can finish. Errors wrap ErrStart or
// ErrShutdown.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// HealthCheckHandler provides liveness ("ALIVE") and readiness ("READY" /
// "NOT_READY") probes.
package httpserver
