package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricCalls    = "qq.http.calls"
	MetricDuration = "qq.http.duration"
)

// Call outcomes recorded on spans and metrics.
const (
	OutcomeOK        = "ok"
	OutcomeAPIError  = "api_error"
	OutcomeHTTPError = "http_error"
	OutcomeTransport = "transport_error"
)

// Instruments holds the metric instruments for outbound calls.
type Instruments struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewInstruments creates the call instruments on mp, or on the global provider when mp is nil.
func NewInstruments(mp metric.MeterProvider) (*Instruments, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(InstrumentationName)

	calls, err := meter.Int64Counter(MetricCalls,
		metric.WithDescription("Total number of calls to the remote API"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCalls, err)
	}

	duration, err := meter.Float64Histogram(MetricDuration,
		metric.WithDescription("Duration of calls to the remote API"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDuration, err)
	}

	return &Instruments{calls: calls, duration: duration}, nil
}

// RecordCall records one completed call.
func (i *Instruments) RecordCall(ctx context.Context, verb, endpoint, outcome string, d time.Duration) {
	if i == nil {
		return
	}
	i.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrVerb, verb),
		attribute.String(AttrEndpoint, endpoint),
		attribute.String(AttrOutcome, outcome),
	))
	i.duration.Record(ctx, float64(d.Microseconds())/1000, metric.WithAttributes(
		attribute.String(AttrVerb, verb),
		attribute.String(AttrEndpoint, endpoint),
	))
}
