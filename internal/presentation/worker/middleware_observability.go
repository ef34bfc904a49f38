package workerpresentation

import (
	"context"

	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"github.com/Zhima-Mochi/minishop-market/internal/observability/logctx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// WithEventContext puts a per-event logger on ctx for handler code.
// Fields: event, event_id (generated when empty), trace_id/span_id when the
// context carries a valid span, and the given low-cardinality attrs.
func WithEventContext(
	ctx context.Context,
	base observability.Logger,
	eventName string,
	attrs map[string]string,
) (context.Context, observability.Logger) {
	fields := make([]observability.Field, 0, len(attrs)+4)
	fields = append(fields, observability.F("event", eventName))

	evtID := attrs["event_id"]
	if evtID == "" {
		evtID = uuid.NewString()
	}
	fields = append(fields, observability.F("event_id", evtID))

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}

	for k, v := range attrs {
		if k == "event_id" || v == "" {
			continue
		}
		fields = append(fields, observability.F(k, v))
	}

	logger := logctx.FromOr(ctx, base).With(fields...)
	return logctx.With(ctx, logger), logger
}
