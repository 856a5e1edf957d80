// Package observability installs the global OpenTelemetry tracer and meter
// providers that the request package reports to.
//
// Setup exports spans and metrics over OTLP/HTTP and registers the W3C
// trace-context and baggage propagators used by adapters.PropagateTrace:
//
//	p, err := observability.Setup(ctx, observability.Config{
//	    ServiceName: "orders-gateway",
//	    Endpoint:    "otel-collector:4318",
//	    Insecure:    true,
//	})
//	defer p.Shutdown(ctx)
//
//	f := request.NewFactory() // records to the installed meter provider
package observability
