// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// PrometheusProvider builds a metric.MeterProvider backed by a dedicated
// Prometheus registry (never the global one, to avoid collisions when a
// process embeds more than one Registry) and an http.Handler for scraping
// it. Grounded in the teacher's initPrometheusProvider.
func PrometheusProvider() (*metric.MeterProvider, http.Handler, error) {
	registry := promclient.NewRegistry()

	exporter, err := otelprometheus.New(otelprometheus.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("observability: create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return provider, handler, nil
}

// OTLPProvider builds a metric.MeterProvider that periodically exports to
// an OTLP/HTTP collector at endpoint. Grounded in the teacher's
// initOTLPProvider, simplified to the single endpoint+interval knob this
// package's narrower scope needs.
func OTLPProvider(ctx context.Context, endpoint string, interval time.Duration) (*metric.MeterProvider, error) {
	var opts []otlpmetrichttp.Option
	if endpoint != "" {
		opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("observability: create otlp exporter: %w", err)
	}

	reader := metric.NewPeriodicReader(exporter, metric.WithInterval(interval))
	return metric.NewMeterProvider(metric.WithReader(reader)), nil
}

// StdoutProvider builds a metric.MeterProvider that prints exported
// metrics to stdout, for local development, grounded in the teacher's
// initStdoutProvider.
func StdoutProvider(interval time.Duration) (*metric.MeterProvider, error) {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("observability: create stdout exporter: %w", err)
	}

	reader := metric.NewPeriodicReader(exporter, metric.WithInterval(interval))
	return metric.NewMeterProvider(metric.WithReader(reader)), nil
}

// StdoutTracerProvider builds a trace.TracerProvider that prints spans to
// stdout, the tracing-side counterpart to StdoutProvider for local
// development without a collector.
func StdoutTracerProvider() (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("observability: create stdout trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter)), nil
}
