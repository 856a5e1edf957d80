package request

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/kbukum/middlewarekit/httpclient"
)

const instrumentationName = "github.com/kbukum/middlewarekit/request"

type metrics struct {
	sent     metric.Int64Counter
	aborted  metric.Int64Counter
	duration metric.Float64Histogram
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	meter := mp.Meter(instrumentationName)

	sent, err := meter.Int64Counter("middlewarekit.request.sent",
		metric.WithDescription("Requests handed to the HTTP client"),
	)
	if err != nil {
		return nil, err
	}
	aborted, err := meter.Int64Counter("middlewarekit.request.aborted",
		metric.WithDescription("Requests vetoed by an adapter"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("middlewarekit.request.duration",
		metric.WithDescription("Time spent in the HTTP client"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &metrics{sent: sent, aborted: aborted, duration: duration}, nil
}

func noopMetrics() *metrics {
	m, _ := newMetrics(noop.NewMeterProvider())
	return m
}

func (m *metrics) recordSent(ctx context.Context, method string, status int, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("outcome", outcome),
		attribute.String("status", statusClass(status)),
	)
	m.sent.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

func (m *metrics) recordAbort(ctx context.Context, method string, index int) {
	m.aborted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.Int("adapter", index),
	))
}

// statusClass collapses a status code to "2xx", "4xx", etc. Zero means no
// response arrived.
func statusClass(status int) string {
	if status == 0 {
		return "none"
	}
	return strconv.Itoa(status/100) + "xx"
}

func responseStatus(resp *httpclient.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
