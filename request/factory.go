package request

import (
	"net/http"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"

	"github.com/kbukum/middlewarekit/httpclient"
	"github.com/kbukum/middlewarekit/logger"
)

// Factory builds requests bound to a shared client and the adapters
// registered so far. It is safe for concurrent use.
type Factory struct {
	baseLog *logger.Logger
	log     *logger.Logger
	metrics *metrics

	mu       sync.Mutex
	client   *httpclient.Client
	adapters []Adapter
}

func NewFactory(opts ...Option) *Factory {
	var o factoryOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger()
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}

	f := &Factory{
		baseLog: o.log,
		log:     o.log.WithComponent("request"),
		client:  o.client,
	}
	m, err := newMetrics(o.meterProvider)
	if err != nil {
		f.log.Warn("request metrics disabled", logger.Fields(logger.FieldError, err.Error()))
		m = noopMetrics()
	}
	f.metrics = m
	for _, a := range o.adapters {
		f.AddAdapter(a)
	}
	return f
}

// AddAdapter appends adapter to the list bound to requests created from
// now on. Nil adapters are ignored.
func (f *Factory) AddAdapter(adapter Adapter) {
	if adapter == nil {
		return
	}
	f.mu.Lock()
	f.adapters = append(f.adapters, adapter)
	f.mu.Unlock()
}

// Adapters returns a copy of the registered adapters in order.
func (f *Factory) Adapters() []Adapter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.adapters)
}

// Client returns the shared client, creating a default one on first use.
func (f *Factory) Client() *httpclient.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clientLocked()
}

func (f *Factory) clientLocked() *httpclient.Client {
	if f.client == nil {
		f.client = httpclient.NewDefault(httpclient.WithLogger(f.baseLog))
	}
	return f.client
}

// SetClient replaces the shared client for requests created afterwards.
// Passing nil makes the next access create a default client again.
func (f *Factory) SetClient(c *httpclient.Client) *Factory {
	f.mu.Lock()
	f.client = c
	f.mu.Unlock()
	return f
}

// ErrorHandler returns the shared client's error handler.
func (f *Factory) ErrorHandler() httpclient.ErrorHandler {
	return f.Client().ErrorHandler()
}

// SetErrorHandler installs h on the shared client.
func (f *Factory) SetErrorHandler(h httpclient.ErrorHandler) *Factory {
	f.Client().SetErrorHandler(h)
	return f
}

func (f *Factory) Get(target Target) *Request    { return f.Custom(http.MethodGet, target) }
func (f *Factory) Post(target Target) *Request   { return f.Custom(http.MethodPost, target) }
func (f *Factory) Put(target Target) *Request    { return f.Custom(http.MethodPut, target) }
func (f *Factory) Patch(target Target) *Request  { return f.Custom(http.MethodPatch, target) }
func (f *Factory) Delete(target Target) *Request { return f.Custom(http.MethodDelete, target) }
func (f *Factory) Head(target Target) *Request   { return f.Custom(http.MethodHead, target) }

// Custom builds a request with an arbitrary method. Neither method nor
// target is validated here.
func (f *Factory) Custom(method string, target Target) *Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &Request{
		method:   method,
		target:   target,
		client:   f.clientLocked(),
		adapters: slices.Clone(f.adapters),
		log:      f.log,
		metrics:  f.metrics,
	}
}
