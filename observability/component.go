package observability

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/middlewarekit/component"
)

// Component manages the telemetry providers as a lifecycle component. Start
// it before components that create request factories.
type Component struct {
	config Config

	mu       sync.Mutex
	provider *Provider
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

func NewComponent(cfg Config) *Component {
	cfg.ApplyDefaults()
	return &Component{config: cfg}
}

func (c *Component) Name() string { return "observability" }

func (c *Component) Start(ctx context.Context) error {
	p, err := Setup(ctx, c.config)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.provider = p
	c.mu.Unlock()
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	p := c.provider
	c.provider = nil
	c.mu.Unlock()
	if p == nil {
		return nil
	}
	return p.Shutdown(ctx)
}

func (c *Component) Health(_ context.Context) component.Health {
	c.mu.Lock()
	started := c.provider != nil
	c.mu.Unlock()
	if !started {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "telemetry",
		Details: fmt.Sprintf("%s via %s", c.config.ServiceName, c.config.Endpoint),
	}
}
