// Package observability provides OpenTelemetry tracing and metrics for
// outbound API calls.
//
// No exporter is configured here; the embedding application installs its
// providers and passes them in, or sets the otel globals.
//
//	tracer := observability.Tracer(tp)
//	instruments, err := observability.NewInstruments(mp)
//
//	ctx, call := observability.BeginCall(ctx, tracer, instruments, "GET", endpoint, id, time.Now())
//	defer call.End(ctx, observability.OutcomeOK, 200, nil, time.Now())
package observability
