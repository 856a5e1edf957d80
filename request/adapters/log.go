package adapters

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/middlewarekit/logger"
	"github.com/kbukum/middlewarekit/request"
)

// Log writes a debug entry for every outgoing request, tagged with the
// trace and span ids when ctx carries a span. A nil l uses the global logger.
func Log(l *logger.Logger) request.Adapter {
	return func(ctx context.Context, r *request.Request) error {
		log := l
		if log == nil {
			log = logger.WithComponent("request")
		}
		fields := logger.Fields(
			logger.FieldMethod, r.Method(),
			logger.FieldTarget, request.TargetString(r.Target()),
		)
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields[logger.FieldTraceID] = sc.TraceID().String()
			fields[logger.FieldSpanID] = sc.SpanID().String()
		}
		log.Debug("outgoing request", fields)
		return nil
	}
}
