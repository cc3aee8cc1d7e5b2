// Package redis establishes the Redis connection backing the durable session
// snapshot store. Connect parses a connection URL, pings the server, and
// retries on a fixed interval until the server answers or the configured
// timeout elapses; Healthcheck returns a probe suitable for readiness
// endpoints.
package redis
