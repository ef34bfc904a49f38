package observability

import (
	"context"

	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// NewTracer returns a tracer from the global otel provider. Without an SDK
// provider installed the spans are non-recording.
func NewTracer(name string) observability.Tracer {
	if name == "" {
		name = "minishop-market"
	}
	return &tracer{t: otel.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...), trace.WithSpanKind(trace.SpanKindInternal))
}
