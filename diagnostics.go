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

import "log/slog"

// DiagnosticEvent represents a non-fatal routing event worth surfacing to
// an observability system: an ambiguous media-type tie-break, a cache
// invalidation, or an argument-conversion fallback. The registry functions
// correctly whether these are collected or not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any
}

// DiagnosticKind categorizes a DiagnosticEvent.
type DiagnosticKind string

const (
	// DiagAmbiguousMatch fires when two endpoints sharing a path produce
	// equally ranked content-type and accept candidates (spec.md §7
	// AmbiguousMatch): the registry still returns a winner, deterministically,
	// but the tie is worth logging.
	DiagAmbiguousMatch DiagnosticKind = "ambiguous_match"

	// DiagArgumentConversionFailed fires when a custom parameter's
	// fromString/valueOf-style factory could not produce a value and the
	// parameter was bound to nil instead of failing the request.
	DiagArgumentConversionFailed DiagnosticKind = "argument_conversion_failed"

	// DiagRouteRegistered fires once per successful Register call, mirroring
	// the teacher's route-registration diagnostic.
	DiagRouteRegistered DiagnosticKind = "route_registered"

	// DiagCacheInvalidated fires when the first Freeze publishes the trie
	// and resets the best-match cache; it is emitted whether or not the
	// cache is enabled.
	DiagCacheInvalidated DiagnosticKind = "cache_invalidated"
)

// DiagnosticHandler receives diagnostic events from the registry.
// Implementations may log, emit metrics, trace events, or ignore them; if
// none is configured, events are silently dropped.
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

// OnDiagnostic implements DiagnosticHandler.
func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

// emit reports e to the configured handler, if any. It is a no-op when no
// handler is configured, keeping diagnostics zero-overhead by default.
func (reg *Registry) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if reg.diagnostics == nil {
		return
	}
	reg.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: message, Fields: fields})
}

// SlogDiagnosticHandler adapts logger to DiagnosticHandler, logging each
// event at slog.LevelWarn with kind and fields attached. This is the
// ready-made handler for callers who just want diagnostics on the log
// output rather than a custom sink, mirroring the teacher's NoopLogger/
// slog.Logger defaulting in router.go.
func SlogDiagnosticHandler(logger *slog.Logger) DiagnosticHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		args := make([]any, 0, 2+2*len(e.Fields))
		args = append(args, "kind", string(e.Kind))
		for k, v := range e.Fields {
			args = append(args, k, v)
		}
		logger.Warn(e.Message, args...)
	})
}
