// Package server exposes a prime service over HTTP using Gin, with
// cleartext HTTP/2 (h2c) support.
//
// # Routes
//
//   - GET /v1/primes?min=&max=: primes between two bounds
//   - GET /v1/primes?range=: primes covered by a range expression such as 10..=100
//   - GET /v1/primes/first?count=: the first count primes
//   - GET /health: component health, 503 when a component is down
//   - GET /info: build version and uptime
//
// Successful responses use the {"data": ..., "meta": ...} envelope. Failures
// are rendered from *errors.AppError as {"error": {...}}.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation into the request context
//   - Tracing: one OpenTelemetry server span per request
//   - RateLimit: per-client sliding-window limiting
//   - RequestLogger: access log with level chosen by status code
package server
