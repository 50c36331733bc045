package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CallObservation tracks the span and timing of one outbound call.
type CallObservation struct {
	Verb      string
	Endpoint  string
	RequestID string
	StartTime time.Time

	span        trace.Span
	instruments *Instruments
}

// BeginCall starts a span for an outbound call. instruments may be nil.
func BeginCall(ctx context.Context, tracer trace.Tracer, instruments *Instruments,
	verb, endpoint, requestID string, now time.Time,
) (context.Context, *CallObservation) {
	ctx, span := StartSpan(ctx, tracer, SpanHTTPCall,
		attribute.String(AttrVerb, verb),
		attribute.String(AttrEndpoint, endpoint),
		attribute.String(AttrRequestID, requestID),
	)
	return ctx, &CallObservation{
		Verb:        verb,
		Endpoint:    endpoint,
		RequestID:   requestID,
		StartTime:   now,
		span:        span,
		instruments: instruments,
	}
}

// End closes the span and records the call metrics.
// statusCode is zero when no response was received.
func (c *CallObservation) End(ctx context.Context, outcome string, statusCode int, err error, now time.Time) {
	c.span.SetAttributes(attribute.String(AttrOutcome, outcome))
	if statusCode != 0 {
		c.span.SetAttributes(attribute.Int(AttrStatusCode, statusCode))
	}
	EndSpan(c.span, err)
	c.instruments.RecordCall(ctx, c.Verb, c.Endpoint, outcome, now.Sub(c.StartTime))
}

type requestIDKey struct{}

// WithRequestID stores a caller-chosen request id in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
