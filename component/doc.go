// Package component defines the lifecycle contract shared by long-lived
// middlewarekit building blocks such as the HTTP client and request factory.
package component
