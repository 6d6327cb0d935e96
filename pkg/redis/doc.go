// Package redis provides connection helpers for the go-redis client:
// Connect with retry and timeout driven by an env-tagged Config, and a
// Healthcheck probe for readiness endpoints.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
// Sentinel errors wrap the underlying go-redis errors with errors.Join
// so callers can compare with errors.Is.
package redis
