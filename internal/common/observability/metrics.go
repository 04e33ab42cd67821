// internal/common/observability/metrics.go
package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Observability bundles the otel meter and tracer used by the resolver and
// the workers.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	tracer         trace.Tracer

	jobCounter         otelmetric.Int64Counter
	jobDuration        otelmetric.Float64Histogram
	resolutionCounter  otelmetric.Int64Counter
	resolutionDuration otelmetric.Float64Histogram
}

type options struct {
	registerer    prometheus.Registerer
	spanProcessor sdktrace.SpanProcessor
	setGlobal     bool
}

type Option func(*options)

// WithRegisterer exports metrics to reg instead of the default registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithSpanProcessor attaches a span processor to the tracer provider.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *options) { o.spanProcessor = sp }
}

// WithoutGlobal keeps the providers out of the otel globals.
func WithoutGlobal() Option {
	return func(o *options) { o.setGlobal = false }
}

func New(serviceName string, opts ...Option) (*Observability, error) {
	o := options{registerer: prometheus.DefaultRegisterer, setGlobal: true}
	for _, opt := range opts {
		opt(&o)
	}

	exporter, err := otelprom.New(otelprom.WithRegisterer(o.registerer))
	if err != nil {
		return nil, err
	}

	mp := metric.NewMeterProvider(metric.WithReader(exporter))

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithSampler(sdktrace.AlwaysSample())}
	if o.spanProcessor != nil {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(o.spanProcessor))
	}
	tp := sdktrace.NewTracerProvider(tpOpts...)

	if o.setGlobal {
		otel.SetMeterProvider(mp)
		otel.SetTracerProvider(tp)
	}

	obs := &Observability{
		meterProvider:  mp,
		tracerProvider: tp,
		meter:          mp.Meter(serviceName),
		tracer:         tp.Tracer(serviceName),
	}
	obs.initInstruments()
	return obs, nil
}

// NewNoop returns an instance whose instruments and spans go nowhere.
func NewNoop() *Observability {
	obs := &Observability{
		meter:  metricnoop.NewMeterProvider().Meter("noop"),
		tracer: tracenoop.NewTracerProvider().Tracer("noop"),
	}
	obs.initInstruments()
	return obs
}

func (o *Observability) initInstruments() {
	o.jobCounter, _ = o.meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	o.jobDuration, _ = o.meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)
	o.resolutionCounter, _ = o.meter.Int64Counter(
		"resolutions.completed",
		otelmetric.WithDescription("Resolutions by feature and tier"),
	)
	o.resolutionDuration, _ = o.meter.Float64Histogram(
		"resolutions.duration",
		otelmetric.WithDescription("Resolution duration"),
		otelmetric.WithUnit("ms"),
	)
}

// StartSpan opens a span; the caller ends it.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordJobProcessed(ctx context.Context, status string) {
	if o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, duration time.Duration, status string) {
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordResolution(ctx context.Context, feature, tier string, duration time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("feature", feature),
		attribute.String("tier", tier),
	)
	if o.resolutionCounter != nil {
		o.resolutionCounter.Add(ctx, 1, attrs)
	}
	if o.resolutionDuration != nil {
		o.resolutionDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown(ctx context.Context) error {
	var firstErr error
	if o.meterProvider != nil {
		if err := o.meterProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
