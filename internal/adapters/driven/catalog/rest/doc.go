// Package rest implements the catalog port over the catalog HTTP API.
//
// Every request passes a token-bucket rate limiter and a circuit breaker,
// carries an X-Request-ID header, and is recorded in Prometheus metrics.
// Transport failures, timeouts and an open breaker surface as
// domain.ErrNetworkFailure; non-2xx responses as *domain.ServiceError.
// Nothing is retried.
package rest
