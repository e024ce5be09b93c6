//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package metric provides metrics collection for quizgen. It integrates
// with OpenTelemetry and tracks recovery and generation outcomes per
// upstream provider.
package metric

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/studyforge/quizgen/repair"
)

const (
	meterName = "quizgen"

	defaultServiceName    = "quizgen"
	defaultServiceVersion = "0.1.0"
)

var (
	meterProvider metric.MeterProvider = noop.NewMeterProvider()

	// RecoveryCnt counts recovery outcomes, tagged with status and the
	// upstream provider.
	RecoveryCnt metric.Int64Counter
	// RepairStageCnt counts executed repair stages, tagged with stage name
	// and whether the stage's output parsed.
	RepairStageCnt metric.Int64Counter
	// GenerationCnt counts generation runs, tagged with kind and outcome.
	GenerationCnt metric.Int64Counter
)

func init() {
	// Metrics are usable before InitMeterProvider; they just go nowhere.
	if err := InitMeterProvider(meterProvider); err != nil {
		panic(fmt.Sprintf("initializing noop meter provider: %v", err))
	}
}

// InitMeterProvider initializes the meter provider and the instruments.
func InitMeterProvider(mp metric.MeterProvider) error {
	if mp == nil {
		return fmt.Errorf("meter provider is nil")
	}
	meterProvider = mp
	meter := mp.Meter(meterName)

	var err error
	if RecoveryCnt, err = meter.Int64Counter(
		"quizgen_recovery_total",
		metric.WithDescription("Total number of completion recoveries"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("failed to create recovery counter: %w", err)
	}
	if RepairStageCnt, err = meter.Int64Counter(
		"quizgen_repair_stage_total",
		metric.WithDescription("Total number of executed repair stages"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("failed to create repair stage counter: %w", err)
	}
	if GenerationCnt, err = meter.Int64Counter(
		"quizgen_generation_total",
		metric.WithDescription("Total number of generation runs"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("failed to create generation counter: %w", err)
	}
	return nil
}

// GetMeterProvider returns the meter provider.
func GetMeterProvider() metric.MeterProvider {
	return meterProvider
}

// RecordRecovery records one recovery result for a provider.
func RecordRecovery(ctx context.Context, res repair.Result, provider string) {
	if provider == "" {
		provider = "unknown"
	}
	RecoveryCnt.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", res.Status.String()),
		attribute.String("provider", provider),
		attribute.Bool("truncation_suspected", res.Truncation.Suspected),
	))
	for _, attempt := range res.Attempts {
		RepairStageCnt.Add(ctx, 1, metric.WithAttributes(
			attribute.String("stage", attempt.Stage.String()),
			attribute.Bool("succeeded", attempt.Succeeded),
			attribute.String("provider", provider),
		))
	}
}

// RecordGeneration records one generation run.
func RecordGeneration(ctx context.Context, kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	GenerationCnt.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

// options holds the configuration options for the meter provider.
type options struct {
	serviceName     string
	serviceVersion  string
	metricsEndpoint string
}

// Option is a function that configures meter options.
type Option func(*options)

// WithEndpoint sets the OTLP HTTP endpoint, host and port without scheme.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.metricsEndpoint = endpoint }
}

// WithServiceName sets the reported service name.
func WithServiceName(name string) Option {
	return func(o *options) { o.serviceName = name }
}

// WithServiceVersion sets the reported service version.
func WithServiceVersion(version string) Option {
	return func(o *options) { o.serviceVersion = version }
}

// NewMeterProvider creates a meter provider exporting over OTLP HTTP.
// OTEL_EXPORTER_OTLP_METRICS_ENDPOINT and OTEL_EXPORTER_OTLP_ENDPOINT are
// honored when no endpoint option is given.
func NewMeterProvider(ctx context.Context, opts ...Option) (*sdkmetric.MeterProvider, error) {
	o := &options{
		serviceName:    defaultServiceName,
		serviceVersion: defaultServiceVersion,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metricsEndpoint == "" {
		o.metricsEndpoint = metricsEndpoint()
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(o.serviceName),
			semconv.ServiceVersionKey.String(o.serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(o.metricsEndpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	), nil
}

func metricsEndpoint() string {
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	// otlpmetrichttp adds /v1/metrics to the endpoint base itself.
	return "localhost:4318"
}
