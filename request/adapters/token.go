package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kbukum/middlewarekit/httpclient"
	"github.com/kbukum/middlewarekit/request"
)

// SigningMethod names a supported HMAC algorithm.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// TokenConfig configures the service token adapter.
type TokenConfig struct {
	// Secret is the HMAC signing key.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `yaml:"method" mapstructure:"method"`

	Issuer   string   `yaml:"issuer" mapstructure:"issuer"`
	Subject  string   `yaml:"subject" mapstructure:"subject"`
	Audience []string `yaml:"audience" mapstructure:"audience"`

	// TTL is the token lifetime (default: 5m).
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`

	now func() time.Time
}

func (c *TokenConfig) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TTL == 0 {
		c.TTL = 5 * time.Minute
	}
}

func (c *TokenConfig) Validate() error {
	if c.Secret == "" {
		return errors.New("service token: secret is required")
	}
	if c.TTL < 0 {
		return errors.New("service token: ttl must not be negative")
	}
	if c.signingMethod() == nil {
		return fmt.Errorf("service token: unsupported signing method %q", c.Method)
	}
	return nil
}

func (c *TokenConfig) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS256:
		return gojwt.SigningMethodHS256
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return nil
	}
}

// ServiceToken signs a short-lived JWT for every request and sends it as
// bearer auth, replacing any auth set on the request.
func ServiceToken(cfg TokenConfig) (request.Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	now := cfg.now
	if now == nil {
		now = time.Now
	}
	method := cfg.signingMethod()
	key := []byte(cfg.Secret)

	return func(_ context.Context, r *request.Request) error {
		issued := now()
		claims := gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    cfg.Issuer,
			Subject:   cfg.Subject,
			IssuedAt:  gojwt.NewNumericDate(issued),
			ExpiresAt: gojwt.NewNumericDate(issued.Add(cfg.TTL)),
		}
		if len(cfg.Audience) > 0 {
			claims.Audience = gojwt.ClaimStrings(cfg.Audience)
		}
		signed, err := gojwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			return fmt.Errorf("service token: sign: %w", err)
		}
		r.SetAuth(httpclient.BearerAuth(signed))
		return nil
	}, nil
}
