package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/injector/errors"
)

const instrumentationName = "github.com/kbukum/injector"

// Attribute keys attached to spans and metric points.
const (
	AttrType      = attribute.Key("di.type")
	AttrLifecycle = attribute.Key("di.lifecycle")
	AttrScopeID   = attribute.Key("di.scope.id")
	AttrStatus    = attribute.Key("status")
	AttrErrorCode = attribute.Key("error.code")
)

// Status values for AttrStatus.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

type options struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures an Instrumentation.
type Option func(*options)

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// Instrumentation records spans and metrics for container operations.
type Instrumentation struct {
	tracer  trace.Tracer
	metrics *Metrics
}

// New creates an Instrumentation from the given providers.
func New(opts ...Option) (*Instrumentation, error) {
	o := options{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	metrics, err := NewMetrics(o.meterProvider.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}
	return &Instrumentation{
		tracer:  o.tracerProvider.Tracer(instrumentationName),
		metrics: metrics,
	}, nil
}

// Noop returns an Instrumentation that records nothing.
func Noop() *Instrumentation {
	// noop instruments never fail to create
	metrics, _ := NewMetrics(metricnoop.NewMeterProvider().Meter(instrumentationName))
	return &Instrumentation{
		tracer:  tracenoop.NewTracerProvider().Tracer(instrumentationName),
		metrics: metrics,
	}
}

// StartResolve opens the span of one resolution.
func (i *Instrumentation) StartResolve(ctx context.Context, typeName string) (context.Context, trace.Span) {
	return i.tracer.Start(ctx, "di.resolve", trace.WithAttributes(AttrType.String(typeName)))
}

// EndResolve closes a resolution span and records its outcome.
func (i *Instrumentation) EndResolve(ctx context.Context, span trace.Span, typeName, lifecycle string, start time.Time, err error) {
	span.SetAttributes(AttrLifecycle.String(lifecycle))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	i.metrics.RecordResolve(ctx, typeName, lifecycle, time.Since(start), err)
}

// RecordConstruct records a construction through a constructor or factory.
func (i *Instrumentation) RecordConstruct(ctx context.Context, typeName, lifecycle string, err error) {
	i.metrics.RecordConstruct(ctx, typeName, lifecycle, err)
}

// ScopeBegun records a pushed scope frame.
func (i *Instrumentation) ScopeBegun(ctx context.Context, scopeID string) {
	trace.SpanFromContext(ctx).AddEvent("di.scope.begin", trace.WithAttributes(AttrScopeID.String(scopeID)))
	i.metrics.scopeActive.Add(ctx, 1)
}

// ScopeEnded records a popped scope frame.
func (i *Instrumentation) ScopeEnded(ctx context.Context, scopeID string) {
	trace.SpanFromContext(ctx).AddEvent("di.scope.end", trace.WithAttributes(AttrScopeID.String(scopeID)))
	i.metrics.scopeActive.Add(ctx, -1)
}

// Metrics holds the metric instruments of the container.
type Metrics struct {
	resolveTotal    metric.Int64Counter
	resolveDuration metric.Float64Histogram
	constructTotal  metric.Int64Counter
	scopeActive     metric.Int64UpDownCounter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	resolveTotal, err := meter.Int64Counter("di.resolve.total",
		metric.WithDescription("Total number of resolutions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.resolve.total counter: %w", err)
	}

	resolveDuration, err := meter.Float64Histogram("di.resolve.duration",
		metric.WithDescription("Duration of resolutions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.resolve.duration histogram: %w", err)
	}

	constructTotal, err := meter.Int64Counter("di.construct.total",
		metric.WithDescription("Total number of constructor and factory invocations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.construct.total counter: %w", err)
	}

	scopeActive, err := meter.Int64UpDownCounter("di.scope.active",
		metric.WithDescription("Number of currently active scope frames"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.scope.active counter: %w", err)
	}

	return &Metrics{
		resolveTotal:    resolveTotal,
		resolveDuration: resolveDuration,
		constructTotal:  constructTotal,
		scopeActive:     scopeActive,
	}, nil
}

// RecordResolve records one resolution.
func (m *Metrics) RecordResolve(ctx context.Context, typeName, lifecycle string, d time.Duration, err error) {
	m.resolveTotal.Add(ctx, 1, metric.WithAttributes(outcomeAttrs(typeName, lifecycle, err)...))
	m.resolveDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		AttrType.String(typeName),
		AttrLifecycle.String(lifecycle),
	))
}

// RecordConstruct records one constructor or factory invocation.
func (m *Metrics) RecordConstruct(ctx context.Context, typeName, lifecycle string, err error) {
	m.constructTotal.Add(ctx, 1, metric.WithAttributes(outcomeAttrs(typeName, lifecycle, err)...))
}

func outcomeAttrs(typeName, lifecycle string, err error) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		AttrType.String(typeName),
		AttrLifecycle.String(lifecycle),
	}
	if err != nil {
		attrs = append(attrs, AttrStatus.String(StatusError), AttrErrorCode.String(string(errors.CodeOf(err))))
	} else {
		attrs = append(attrs, AttrStatus.String(StatusOK))
	}
	return attrs
}
