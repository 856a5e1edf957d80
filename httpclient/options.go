package httpclient

import (
	"net/http"

	"github.com/kbukum/middlewarekit/logger"
)

// Option customizes a Client at construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. Its transport is
// used as-is; Config.TLS and Config.H2C are ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
			c.customTransport = true
		}
	}
}

// WithTransport keeps the configured timeout but sends through rt.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.httpClient.Transport = rt
			c.customTransport = true
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(c *Client) {
		if h != nil {
			c.errorHandler = h
		}
	}
}
