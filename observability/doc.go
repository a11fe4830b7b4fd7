// Package observability wires OpenTelemetry tracing and metrics into the
// prime service and the generators behind it.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, cfg.Tracer("primesd", version.Version, "prod"))
//	defer tp.Shutdown(ctx)
//
// Generator metrics:
//
//	pm, err := observability.NewPrimeMetrics(observability.Meter("primesd"))
//	gen := prime.NewIncremental(prime.WithMetrics(pm))
//
// A nil *Metrics or *PrimeMetrics is valid and records nothing.
package observability
