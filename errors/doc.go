// Package errors provides the structured error type shared by middlewarekit
// packages. Errors carry a machine-readable code, a human-readable message,
// a recommended HTTP status and a retryable flag.
package errors
