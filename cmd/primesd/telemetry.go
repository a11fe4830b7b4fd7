package main

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/multierr"

	"github.com/kbukum/primekit/observability"
)

const instrumentationName = "github.com/kbukum/primekit"

// telemetry owns the OpenTelemetry providers. With both exporters disabled
// every field is nil and the instruments record nothing.
type telemetry struct {
	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider

	metrics      *observability.Metrics
	primeMetrics *observability.PrimeMetrics
}

func startTelemetry(ctx context.Context, cfg *Config) (*telemetry, error) {
	t := &telemetry{}
	obs := cfg.Observability

	if obs.Tracing {
		tp, err := observability.InitTracer(ctx, obs.Tracer(cfg.Name, cfg.Version, cfg.Environment))
		if err != nil {
			return nil, err
		}
		t.tracer = tp
	}

	if obs.Metrics {
		mp, err := observability.InitMeter(ctx, obs.Meter(cfg.Name, cfg.Version, cfg.Environment))
		if err != nil {
			return nil, multierr.Append(err, t.shutdown(ctx))
		}
		t.meter = mp

		meter := observability.Meter(instrumentationName)
		if t.metrics, err = observability.NewMetrics(meter); err != nil {
			return nil, multierr.Append(err, t.shutdown(ctx))
		}
		if t.primeMetrics, err = observability.NewPrimeMetrics(meter); err != nil {
			return nil, multierr.Append(err, t.shutdown(ctx))
		}
	}
	return t, nil
}

// shutdown flushes and stops whichever providers were started.
func (t *telemetry) shutdown(ctx context.Context) error {
	var err error
	if t.tracer != nil {
		err = multierr.Append(err, t.tracer.Shutdown(ctx))
	}
	if t.meter != nil {
		err = multierr.Append(err, t.meter.Shutdown(ctx))
	}
	return err
}
