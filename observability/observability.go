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

// Package observability wires OpenTelemetry metrics and tracing around
// Registry.Resolve. It is entirely optional: a nil *Recorder (the zero
// value returned by a failed provider setup, or simply never configuring
// router.WithObservability) adds no overhead to Resolve, matching the
// teacher's MetricsConfig/TracingConfig being nil when not configured.
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Recorder implements router.Observer, recording one counter increment
// and one histogram observation per Resolve call, plus a span around it
// when a Tracer is configured.
//
// Grounded in the teacher's metrics.go/tracing.go: requestCount +
// requestDuration become resolveCount + resolveDuration, and the
// "router.Resolve" span mirrors the teacher's per-request span with
// route-template and status attributes swapped for match outcome.
type Recorder struct {
	meter  metric.Meter
	tracer trace.Tracer

	resolveCount    metric.Int64Counter
	resolveDuration metric.Float64Histogram
}

// New builds a Recorder from an OpenTelemetry MeterProvider and
// TracerProvider. Either may be nil to disable that half of observability
// independently, mirroring the teacher's independently-optional
// MetricsConfig and TracingConfig.
func New(meterProvider metric.MeterProvider, tracerProvider trace.TracerProvider) (*Recorder, error) {
	rec := &Recorder{}

	if meterProvider != nil {
		rec.meter = meterProvider.Meter("github.com/jaxgo/router")

		count, err := rec.meter.Int64Counter(
			"router.resolve.count",
			metric.WithDescription("Number of Resolve calls, tagged by outcome"),
			metric.WithUnit("{call}"),
		)
		if err != nil {
			return nil, err
		}
		rec.resolveCount = count

		duration, err := rec.meter.Float64Histogram(
			"router.resolve.duration",
			metric.WithDescription("Resolve call latency"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			return nil, err
		}
		rec.resolveDuration = duration
	}

	if tracerProvider != nil {
		rec.tracer = tracerProvider.Tracer("github.com/jaxgo/router")
	}

	return rec, nil
}

// RecordResolve implements router.Observer. Registry.Resolve passes
// outcome "matched" on success and "no_match" for any error (spec.md §7's
// AmbiguousMatch is reported separately as a DiagnosticEvent, since
// Resolve itself always returns a winner once path+verb match).
func (r *Recorder) RecordResolve(method, template, outcome string, elapsedNanos int64) {
	if r == nil || r.meter == nil {
		return
	}

	attrs := attribute.NewSet(
		attribute.String("http.request.method", method),
		attribute.String("router.outcome", outcome),
		attribute.String("router.route.template", template),
	)

	ctx := context.Background()
	r.resolveCount.Add(ctx, 1, metric.WithAttributeSet(attrs))
	r.resolveDuration.Record(ctx, float64(elapsedNanos)/float64(time.Millisecond), metric.WithAttributeSet(attrs))
}

// StartSpan opens a "router.Resolve" span when tracing is configured,
// returning a no-op finisher otherwise. Callers wrap Registry.Resolve:
//
//	ctx, end := recorder.StartSpan(ctx, method, uri)
//	match, err := reg.Resolve(method, uri, headers)
//	template := ""
//	if match != nil {
//	    template = match.Endpoint.Template
//	}
//	end(template, err)
func (r *Recorder) StartSpan(ctx context.Context, method, uri string) (context.Context, func(template string, err error)) {
	if r == nil || r.tracer == nil {
		return ctx, func(string, error) {}
	}

	ctx, span := r.tracer.Start(ctx, "router.Resolve", trace.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", uri),
	))

	return ctx, func(template string, err error) {
		if template != "" {
			span.SetAttributes(attribute.String("router.route.template", template))
		}
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
