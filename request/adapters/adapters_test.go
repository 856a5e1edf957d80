package adapters

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	apperrors "github.com/kbukum/middlewarekit/errors"
	"github.com/kbukum/middlewarekit/httpclient"
	"github.com/kbukum/middlewarekit/logger"
	"github.com/kbukum/middlewarekit/request"
)

func newRequest(method string, adapters ...request.Adapter) *request.Request {
	f := request.NewFactory(request.WithLogger(logger.Nop()), request.WithAdapters(adapters...))
	return f.Custom(method, request.URI("http://orders.internal/v1/orders"))
}

func build(t *testing.T, r *request.Request) httpclient.Request {
	t.Helper()
	req, err := r.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return req
}

func TestHeaders(t *testing.T) {
	values := map[string]string{"x-tenant": "acme", "Accept": "application/json"}
	r := newRequest(http.MethodGet, Header("x-api-version", "2"), Headers(values))
	values["x-tenant"] = "changed"

	req := build(t, r)
	want := map[string]string{"X-Api-Version": "2", "X-Tenant": "acme", "Accept": "application/json"}
	for k, v := range want {
		if req.Headers[k] != v {
			t.Errorf("header %s = %q, want %q", k, req.Headers[k], v)
		}
	}
}

func TestUserAgent(t *testing.T) {
	req := build(t, newRequest(http.MethodGet, UserAgent("orders-gateway/1.0")))
	if req.Headers["User-Agent"] != "orders-gateway/1.0" {
		t.Errorf("User-Agent = %q", req.Headers["User-Agent"])
	}

	r := newRequest(http.MethodGet, UserAgent("orders-gateway/1.0"))
	r.SetHeader("user-agent", "custom")
	if got := build(t, r).Headers["User-Agent"]; got != "custom" {
		t.Errorf("User-Agent overwritten: %q", got)
	}
}

func TestRequestID(t *testing.T) {
	r := newRequest(http.MethodGet, RequestID())
	first := build(t, r).Headers[RequestIDHeaderName]
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("request id %q: %v", first, err)
	}
	if again := build(t, r).Headers[RequestIDHeaderName]; again != first {
		t.Errorf("id changed on rebuild: %q -> %q", first, again)
	}

	r = newRequest(http.MethodGet, RequestIDHeader("X-Correlation-Id"))
	r.SetHeader("X-Correlation-Id", "abc")
	if got := build(t, r).Headers["X-Correlation-Id"]; got != "abc" {
		t.Errorf("caller id overwritten: %q", got)
	}
}

func TestPropagateTrace(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "outbound")
	defer span.End()
	traceID := span.SpanContext().TraceID().String()

	r := newRequest(http.MethodGet, PropagateTraceWith(propagation.TraceContext{}))
	req, err := r.Build(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := req.Headers["Traceparent"]; !strings.Contains(got, traceID) {
		t.Errorf("traceparent = %q, want trace id %s", got, traceID)
	}

	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer otel.SetTextMapPropagator(prev)

	req, err = newRequest(http.MethodGet, PropagateTrace()).Build(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := req.Headers["Traceparent"]; !strings.Contains(got, traceID) {
		t.Errorf("global propagator traceparent = %q", got)
	}

	req = build(t, newRequest(http.MethodGet, PropagateTrace()))
	if _, ok := req.Headers["Traceparent"]; ok {
		t.Error("traceparent set without a span")
	}
}

func TestServiceToken(t *testing.T) {
	issued := time.Now().Truncate(time.Second)
	a, err := ServiceToken(TokenConfig{
		Secret:   "s3cret",
		Issuer:   "orders-gateway",
		Subject:  "orders",
		Audience: []string{"billing"},
		TTL:      time.Minute,
		now:      func() time.Time { return issued },
	})
	if err != nil {
		t.Fatalf("ServiceToken: %v", err)
	}

	r := newRequest(http.MethodPost, a)
	r.SetAuth(httpclient.BasicAuth("user", "pass"))
	req := build(t, r)
	if req.Auth == nil || req.Auth.Type != httpclient.AuthBearer {
		t.Fatalf("auth = %+v", req.Auth)
	}

	claims := &gojwt.RegisteredClaims{}
	_, err = gojwt.ParseWithClaims(req.Auth.Token, claims,
		func(*gojwt.Token) (any, error) { return []byte("s3cret"), nil },
		gojwt.WithValidMethods([]string{"HS256"}),
		gojwt.WithIssuer("orders-gateway"),
		gojwt.WithAudience("billing"),
		gojwt.WithTimeFunc(func() time.Time { return issued }),
	)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "orders" || claims.ID == "" {
		t.Errorf("claims = %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Minute {
		t.Errorf("lifetime = %v", got)
	}
}

func TestServiceToken_Config(t *testing.T) {
	tests := []struct {
		name string
		cfg  TokenConfig
	}{
		{"missing secret", TokenConfig{}},
		{"bad method", TokenConfig{Secret: "x", Method: "RS256"}},
		{"negative ttl", TokenConfig{Secret: "x", TTL: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ServiceToken(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}

	cfg := TokenConfig{Secret: "x"}
	cfg.ApplyDefaults()
	if cfg.Method != HS256 || cfg.TTL != 5*time.Minute {
		t.Errorf("defaults = %+v", cfg)
	}
}

type createOrder struct {
	SKU      string `json:"sku" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

func TestValidateBody(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		aborted bool
	}{
		{"valid struct", createOrder{SKU: "A-1", Quantity: 2}, false},
		{"valid pointer", &createOrder{SKU: "A-1", Quantity: 1}, false},
		{"invalid struct", &createOrder{Quantity: 0}, true},
		{"map body", map[string]any{"sku": ""}, false},
		{"nil body", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRequest(http.MethodPost, ValidateBody())
			r.SetBody(tt.body)
			_, err := r.Build(context.Background())
			if request.IsAborted(err) != tt.aborted {
				t.Fatalf("err = %v, aborted want %v", err, tt.aborted)
			}
			if tt.aborted && !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT cause", err)
			}
		})
	}
}

func TestAllowMethods(t *testing.T) {
	guard := AllowMethods("get", http.MethodHead)
	if _, err := newRequest(http.MethodGet, guard).Build(context.Background()); err != nil {
		t.Errorf("GET: %v", err)
	}
	_, err := newRequest(http.MethodDelete, guard).Build(context.Background())
	if !request.IsAborted(err) {
		t.Fatalf("DELETE err = %v", err)
	}
	var abort *request.AbortError
	if !errors.As(err, &abort) || abort.AppError().Code != apperrors.ErrCodeMethodNotAllowed {
		t.Errorf("abort = %+v", abort)
	}
}

func TestLog(t *testing.T) {
	var buf strings.Builder
	l := logger.NewWithWriter(&buf, zerolog.DebugLevel, "test")
	build(t, newRequest(http.MethodPut, Log(l)))
	out := buf.String()
	for _, want := range []string{`"message":"outgoing request"`, `"method":"PUT"`, `"target":"http://orders.internal/v1/orders"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log %s missing %s", out, want)
		}
	}
	buf.Reset()
	var nilURL *url.URL
	f := request.NewFactory(request.WithLogger(logger.Nop()), request.WithAdapters(Log(l)))
	if _, err := f.Get(nilURL).Build(context.Background()); err != nil {
		t.Fatalf("nil target: %v", err)
	}
	if !strings.Contains(buf.String(), `"target":""`) {
		t.Errorf("nil target log = %s", buf.String())
	}
	if strings.Contains(out, "trace_id") {
		t.Errorf("trace_id logged without a span: %s", out)
	}

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "outbound")
	defer span.End()

	buf.Reset()
	if _, err := newRequest(http.MethodGet, Log(l)).Build(ctx); err != nil {
		t.Fatal(err)
	}
	if want := `"trace_id":"` + span.SpanContext().TraceID().String() + `"`; !strings.Contains(buf.String(), want) {
		t.Errorf("log %s missing %s", buf.String(), want)
	}
}
