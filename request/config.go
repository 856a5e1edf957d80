package request

import (
	"fmt"

	"github.com/kbukum/middlewarekit/httpclient"
	"github.com/kbukum/middlewarekit/validation"
)

const defaultName = "request"

// Config describes a factory: its shared client and the adapters
// registered at startup, in order.
type Config struct {
	Name     string            `yaml:"name" mapstructure:"name" validate:"omitempty,max=64"`
	Client   httpclient.Config `yaml:"client" mapstructure:"client"`
	Adapters []AdapterConfig   `yaml:"adapters" mapstructure:"adapters" validate:"dive"`
}

// AdapterConfig selects a registered adapter type and its settings.
type AdapterConfig struct {
	Type     string         `yaml:"type" mapstructure:"type" validate:"required"`
	Settings map[string]any `yaml:"settings" mapstructure:"settings"`
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Client.Name == "" {
		c.Client.Name = c.Name
	}
	c.Client.ApplyDefaults()
}

func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.Client.Validate()
}

// NewFactoryFromConfig builds the client from cfg.Client and registers the
// configured adapters from DefaultRegistry. Options are applied first, so
// adapters passed with WithAdapters run before configured ones. A client
// passed with WithClient is replaced.
func NewFactoryFromConfig(cfg Config, opts ...Option) (*Factory, error) {
	return newFactoryFromConfig(defaultRegistry, cfg, opts...)
}

func newFactoryFromConfig(reg *Registry, cfg Config, opts ...Option) (*Factory, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("request: invalid config: %w", err)
	}

	adapters := make([]Adapter, 0, len(cfg.Adapters))
	for _, ac := range cfg.Adapters {
		a, err := reg.Create(ac.Type, ac.Settings)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}

	f := NewFactory(opts...)
	client, err := httpclient.New(cfg.Client, httpclient.WithLogger(f.baseLog))
	if err != nil {
		return nil, err
	}
	f.SetClient(client)
	for _, a := range adapters {
		f.AddAdapter(a)
	}
	return f, nil
}
