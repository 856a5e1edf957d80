package request

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/middlewarekit/httpclient"
	"github.com/kbukum/middlewarekit/logger"
)

// Option configures a Factory at construction.
type Option func(*factoryOptions)

type factoryOptions struct {
	client        *httpclient.Client
	adapters      []Adapter
	log           *logger.Logger
	meterProvider metric.MeterProvider
}

// WithClient installs the shared client instead of creating one lazily.
func WithClient(c *httpclient.Client) Option {
	return func(o *factoryOptions) { o.client = c }
}

// WithAdapters registers adapters in order, as if by AddAdapter.
func WithAdapters(adapters ...Adapter) Option {
	return func(o *factoryOptions) { o.adapters = append(o.adapters, adapters...) }
}

func WithLogger(l *logger.Logger) Option {
	return func(o *factoryOptions) { o.log = l }
}

// WithMeterProvider sets where request metrics are recorded. Defaults to
// the global OpenTelemetry provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *factoryOptions) { o.meterProvider = mp }
}
