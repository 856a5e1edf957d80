// Package resilience provides the fault-tolerance primitives used by the
// HTTP client: retry with exponential backoff, a circuit breaker and a
// token-bucket rate limiter.
package resilience
