package request

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/middlewarekit/component"
)

// Component runs a Factory built from Config as a managed component.
type Component struct {
	config Config
	opts   []Option

	mu      sync.RWMutex
	factory *Factory
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

func NewComponent(cfg Config, opts ...Option) *Component {
	cfg.ApplyDefaults()
	return &Component{config: cfg, opts: opts}
}

func (c *Component) Name() string { return c.config.Name }

func (c *Component) Start(_ context.Context) error {
	f, err := NewFactoryFromConfig(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.factory = f
	c.mu.Unlock()
	return nil
}

// Stop releases idle connections of the shared client.
func (c *Component) Stop(ctx context.Context) error {
	f := c.Factory()
	if f == nil {
		return nil
	}
	return f.Client().Close(ctx)
}

func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	f := c.Factory()
	switch {
	case f == nil:
		h.Status, h.Message = component.StatusUnhealthy, "not started"
	case !f.Client().IsAvailable(ctx):
		h.Status, h.Message = component.StatusUnhealthy, "circuit breaker open"
	}
	return h
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "request-factory",
		Details: fmt.Sprintf("%s, %d adapters", c.config.Client.BaseURL, len(c.config.Adapters)),
	}
}

// Factory returns the running factory, or nil before Start.
func (c *Component) Factory() *Factory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.factory
}
