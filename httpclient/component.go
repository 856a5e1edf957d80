package httpclient

import (
	"context"
	"errors"
	"sync"

	"github.com/kbukum/middlewarekit/component"
)

// Component manages a Client's lifecycle. The client is built in Start.
type Component struct {
	config Config
	opts   []Option

	mu     sync.RWMutex
	client *Client
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

func (c *Component) Name() string {
	if c.config.Name == "" {
		return defaultName
	}
	return c.config.Name
}

func (c *Component) Start(_ context.Context) error {
	cl, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.client = cl
	c.mu.Unlock()
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	cl := c.Client()
	if cl == nil {
		return nil
	}
	return cl.Close(ctx)
}

func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch cl := c.Client(); {
	case cl == nil:
		h.Status, h.Message = component.StatusUnhealthy, errNotStarted.Error()
	case !cl.IsAvailable(ctx):
		h.Status, h.Message = component.StatusUnhealthy, "circuit breaker open"
	}
	return h
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "http-client",
		Details: c.config.BaseURL,
	}
}

// Client returns the running client, or nil before Start.
func (c *Component) Client() *Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

var errNotStarted = errors.New("not started")
