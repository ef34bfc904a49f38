package application

import (
	"context"
	"fmt"
	"time"

	domoutbox "github.com/Zhima-Mochi/minishop-market/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"github.com/Zhima-Mochi/minishop-market/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	spanPrefix     = "UC."
	publishTimeout = 300 * time.Millisecond
)

// Instrument holds the logger, tracer and RED metrics shared by the use cases
// of one service.
type Instrument struct {
	log          observability.Logger
	tracer       observability.Tracer
	metrics      observability.Metrics
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
}

func NewInstrument(service string, tel observability.Observability) Instrument {
	baseLog := observability.NopLogger()
	tracer := observability.NopTracer()
	metricsProvider := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger()
		tracer = tel.Tracer()
		metricsProvider = tel.Metrics()
	}
	return Instrument{
		log:          baseLog.With(observability.F("service", service)),
		tracer:       tracer,
		metrics:      metricsProvider,
		reqCounter:   metricsProvider.Counter(observability.MUsecaseRequests),
		durHistogram: metricsProvider.Histogram(observability.MUsecaseDuration),
	}
}

func (in Instrument) Logger() observability.Logger { return in.log }

func (in Instrument) Counter(name observability.MetricKey) observability.Counter {
	return in.metrics.Counter(name)
}

// Run tracks one use case execution until End.
type Run struct {
	in            Instrument
	useCase       string
	span          trace.Span
	ctx           context.Context
	logger        observability.Logger
	start         time.Time
	outcome       string
	status        string
	failureReason string
	fields        []observability.Field
}

// Start opens span UC.<spanName> and a logger carrying use_case plus fields.
func (in Instrument) Start(ctx context.Context, useCase, spanName string, fields ...observability.Field) (context.Context, *Run) {
	ctx, logger := logctx.Enrich(ctx, in.log,
		append([]observability.Field{observability.F("use_case", useCase)}, fields...)...)

	attrs := make([]attribute.KeyValue, 0, len(fields)+1)
	attrs = append(attrs, attribute.String("use_case", useCase))
	for _, f := range fields {
		attrs = append(attrs, attribute.String(f.Key, stringify(f.Value)))
	}
	ctx, span := in.tracer.Start(ctx, spanPrefix+spanName, attrs...)

	return ctx, &Run{
		in:      in,
		useCase: useCase,
		span:    span,
		ctx:     ctx,
		logger:  logger,
		start:   time.Now(),
		outcome: "success",
		status:  "OK",
	}
}

func (r *Run) Logger() observability.Logger { return r.logger }

// Set appends fields to the final use_case_done line.
func (r *Run) Set(fields ...observability.Field) {
	r.fields = append(r.fields, fields...)
}

// Status overrides the status text of a successful run.
func (r *Run) Status(status string) {
	r.status = status
}

// Fail marks the run as failed and returns err unchanged.
func (r *Run) Fail(status string, err error) error {
	r.outcome, r.status = "error", status
	r.failureReason = FailureReason(err)
	return err
}

func (r *Run) AddEvent(name string, attrs ...attribute.KeyValue) {
	if r.span != nil {
		r.span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}

// Publish hands e to the publisher with a short timeout. A publish failure
// is logged on the run but does not fail it: the state change is committed.
func (r *Run) Publish(ctx context.Context, publisher domoutbox.Publisher, e domoutbox.Event) {
	if publisher == nil || e == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := publisher.Publish(pubCtx, e); err != nil {
		r.Set(observability.F("event_error", err.Error()), observability.F("event", e.EventName()))
	}
}

// End records metrics, closes the span and writes use_case_done.
func (r *Run) End(err error) {
	if err != nil && r.outcome == "success" {
		r.outcome, r.status = "error", "FAILED"
		r.failureReason = FailureReason(err)
	}

	if r.span != nil {
		if err != nil {
			r.span.RecordError(err)
			r.span.SetStatus(codes.Error, r.status)
		} else {
			r.span.SetStatus(codes.Ok, r.status)
		}
		r.span.End()
	}

	latency := time.Since(r.start).Seconds()
	r.in.reqCounter.Add(1,
		observability.L("use_case", r.useCase),
		observability.L("outcome", r.outcome),
	)
	r.in.durHistogram.Observe(latency,
		observability.L("use_case", r.useCase),
	)

	fields := []observability.Field{
		observability.F("outcome", r.outcome),
		observability.F("status", r.status),
		observability.F("latency_seconds", latency),
	}
	if sc := trace.SpanContextFromContext(r.ctx); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}
	fields = append(fields, r.fields...)
	if r.failureReason != "" {
		fields = append(fields, observability.F("failure_reason", r.failureReason))
	}
	if err != nil {
		fields = append(fields, observability.F("error", err.Error()))
	}

	r.logger.Info("use_case_done", fields...)
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case interface{ String() string }:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
