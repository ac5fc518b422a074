package logbook

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "impractical.co/logbook"

func tracer(ctx context.Context, site Site) trace.Tracer {
	if inst, ok := site.(Instrumented); ok {
		if tp := inst.TracerProvider(ctx); tp != nil {
			return tp.Tracer(instrumentationName)
		}
	}
	return otel.Tracer(instrumentationName)
}
