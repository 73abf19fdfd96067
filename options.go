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

package router

// Option configures a Registry at construction time, following the same
// functional-options shape used throughout this codebase's Option
// and RouteOption types.
type Option func(*Registry)

// WithDiagnostics installs a handler that receives DiagnosticEvents for
// ambiguous matches, argument-conversion fallbacks, and cache
// invalidation. The registry behaves identically whether or not one is
// configured.
//
// Example:
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	reg := router.New(router.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(reg *Registry) {
		reg.diagnostics = handler
	}
}

// WithCache enables the optional best-match cache described in spec.md
// §5: the trie lookup for a given (verb, uri) is memoized, including a
// lookup that found no path, in a cache that Freeze creates empty.
// Header parsing and media-type arbitration still run on every Resolve.
// Disabled by default since the registry is already O(depth) per lookup
// and most callers don't need it.
func WithCache(enabled bool) Option {
	return func(reg *Registry) {
		reg.cacheEnabled = enabled
	}
}

// WithObservability installs an Observer used to record resolve outcomes
// and latency (router/observability.New wraps OpenTelemetry metrics and
// tracing). A nil Observer (the default) disables observability with zero
// overhead, matching the teacher's opt-in MetricsConfig/TracingConfig
// being nil when not configured.
func WithObservability(obs Observer) Option {
	return func(reg *Registry) {
		reg.observer = obs
	}
}

// Observer receives resolve-outcome telemetry. It is implemented by
// router/observability.Recorder; callers that don't need OpenTelemetry can
// supply their own minimal implementation or omit it entirely.
type Observer interface {
	RecordResolve(method, template, outcome string, elapsedNanos int64)
}
