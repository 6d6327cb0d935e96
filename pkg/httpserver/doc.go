// Package httpserver wraps net/http.Server with graceful shutdown,
// signal handling, functional options, and an env-tagged Config.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// Run blocks until the context is canceled, SIGINT/SIGTERM arrives, or
// the listener fails. HealthCheckHandler builds liveness/readiness
// endpoints from dependency probe functions.
package httpserver
