package request

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/kbukum/middlewarekit/config"
	apperrors "github.com/kbukum/middlewarekit/errors"
	"github.com/kbukum/middlewarekit/httpclient"
)

func markerRegistry(log *callLog) *Registry {
	reg := NewRegistry()
	reg.Register("marker", func(settings map[string]any) (Adapter, error) {
		name, _ := settings["name"].(string)
		return log.adapter(name), nil
	})
	return reg
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Name != "request" || cfg.Client.Name != "request" {
		t.Errorf("names = %q/%q", cfg.Name, cfg.Client.Name)
	}
	if cfg.Client.Timeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.Client.Timeout)
	}

	cfg = Config{Name: "orders", Client: httpclient.Config{Name: "orders-api"}}
	cfg.ApplyDefaults()
	if cfg.Client.Name != "orders-api" {
		t.Errorf("client name overwritten: %q", cfg.Client.Name)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Adapters: []AdapterConfig{{Settings: map[string]any{"x": 1}}}}
	cfg.ApplyDefaults()
	err := cfg.Validate()
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want validation error", err)
	}

	cfg = Config{Client: httpclient.Config{Timeout: -time.Second}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected client validation error")
	}
}

func TestNewFactoryFromConfig(t *testing.T) {
	var log callLog
	reg := markerRegistry(&log)

	cfg := Config{
		Client: httpclient.Config{BaseURL: "http://orders.internal", Timeout: 3 * time.Second},
		Adapters: []AdapterConfig{
			{Type: "marker", Settings: map[string]any{"name": "first"}},
			{Type: "marker", Settings: map[string]any{"name": "second"}},
		},
	}
	f, err := newFactoryFromConfig(reg, cfg, WithAdapters(log.adapter("option")))
	if err != nil {
		t.Fatalf("newFactoryFromConfig: %v", err)
	}
	if got := f.Client().Config(); got.BaseURL != "http://orders.internal" || got.Timeout != 3*time.Second {
		t.Errorf("client config = %+v", got)
	}
	if got := log.run(t, f.Get(URI("/"))); !slices.Equal(got, []string{"option", "first", "second"}) {
		t.Errorf("adapters = %v", got)
	}
}

func TestNewFactoryFromConfig_Errors(t *testing.T) {
	reg := markerRegistry(&callLog{})
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown adapter", Config{Adapters: []AdapterConfig{{Type: "nope"}}}},
		{"missing type", Config{Adapters: []AdapterConfig{{}}}},
		{"bad client", Config{Client: httpclient.Config{TLS: &httpclient.TLSConfig{CertFile: "c.pem"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newFactoryFromConfig(reg, tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := `
name: orders
client:
  base_url: http://orders.internal
  timeout: 4s
  headers:
    X-Client: orders-gateway
  auth:
    type: bearer
    token: file-token
adapters:
  - type: request_id
  - type: header
    settings:
      name: X-Tenant
      value: acme
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ORDERS_GATEWAY_CLIENT_TIMEOUT", "9s")

	var cfg Config
	if err := config.LoadConfig("orders-gateway", &cfg, config.WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "orders" || cfg.Client.Name != "orders" {
		t.Errorf("names = %q/%q", cfg.Name, cfg.Client.Name)
	}
	if cfg.Client.BaseURL != "http://orders.internal" || cfg.Client.Timeout != 9*time.Second {
		t.Errorf("client = %+v", cfg.Client)
	}
	if cfg.Client.Auth == nil || cfg.Client.Auth.Type != httpclient.AuthBearer || cfg.Client.Auth.Token != "file-token" {
		t.Errorf("auth = %+v", cfg.Client.Auth)
	}
	if len(cfg.Adapters) != 2 || cfg.Adapters[0].Type != "request_id" || cfg.Adapters[1].Settings["value"] != "acme" {
		t.Errorf("adapters = %+v", cfg.Adapters)
	}
}
