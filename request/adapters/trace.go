package adapters

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/kbukum/middlewarekit/request"
)

// PropagateTrace injects the span context and baggage carried by ctx into
// the request headers using the global text map propagator.
func PropagateTrace() request.Adapter {
	return PropagateTraceWith(nil)
}

// PropagateTraceWith uses p instead of the global propagator. A nil p
// resolves the global propagator on every call.
func PropagateTraceWith(p propagation.TextMapPropagator) request.Adapter {
	return func(ctx context.Context, r *request.Request) error {
		prop := p
		if prop == nil {
			prop = otel.GetTextMapPropagator()
		}
		carrier := propagation.MapCarrier{}
		prop.Inject(ctx, carrier)
		for k, v := range carrier {
			r.SetHeader(k, v)
		}
		return nil
	}
}
