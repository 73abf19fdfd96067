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

import (
	"context"

	"github.com/jaxgo/router/mediatype"
)

// Handler is the invocation contract between the registry and user code.
// The registry never calls Handle itself — it only resolves an endpoint
// and its bound path parameters; the caller (the transport collaborator)
// is responsible for actually invoking it with request-scoped data.
type Handler interface {
	Handle(ctx context.Context, req *Request) (any, error)
}

// HandlerFunc is a function adapter for Handler, mirroring the teacher's
// *Func adapters for single-method interfaces (DiagnosticHandlerFunc,
// ErrorHandlerFunc).
type HandlerFunc func(ctx context.Context, req *Request) (any, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, req *Request) (any, error) {
	return f(ctx, req)
}

// Request carries everything a Handler needs: path parameters bound by
// the dispatch trie, the raw query string, and the request body. The
// caller builds it: PathParams is taken from the Values of the Match that
// Resolve returned, and everything else is supplied verbatim, since
// body/query parsing is explicitly out of scope for this library (spec.md §1).
type Request struct {
	Method     string
	URI        string
	PathParams map[string]string
	Query      string
	Body       []byte
}

// ParamKind identifies the declared type of an endpoint parameter, used
// by the argument-conversion step (§4.9).
type ParamKind int

const (
	// ParamString passes the bound value through verbatim.
	ParamString ParamKind = iota
	ParamInt
	ParamInt64
	ParamFloat64
	ParamBool
	// ParamCustom converts through the descriptor's Factory function (the
	// Go analogue of the source's fromString/valueOf factory lookup); no
	// reflection is used.
	ParamCustom
)

// ParamDescriptor names one of an endpoint's declared parameters and how
// its bound string value should be converted before invocation.
type ParamDescriptor struct {
	Name string
	Kind ParamKind

	// Factory is consulted only when Kind is ParamCustom: it receives the
	// bound string and returns a converted value, or ok=false if the
	// value could not be produced — mirroring the source's
	// fromString/valueOf-then-null fallback (§4.9, §7 ArgumentConversionError).
	Factory func(string) (any, bool)
}

// Endpoint is the opaque handle registered at a single (path, verb,
// media-type) combination: the data model's §3 "Endpoint" record.
type Endpoint struct {
	Method   string
	Template string
	Handler  Handler
	Params   []ParamDescriptor
	Consumes mediatype.Group
	Produces mediatype.Group
}

// consumesOrWildcard returns Consumes, defaulting to "*/*" when the
// endpoint declared no consumes constraint (§4.8 step 2).
func (e *Endpoint) consumesOrWildcard() mediatype.Group {
	if len(e.Consumes) == 0 {
		return mediatype.Wildcard()
	}
	return e.Consumes
}

// producesOrWildcard returns Produces, defaulting to "*/*" when the
// endpoint declared no produces constraint (§4.8 step 2).
func (e *Endpoint) producesOrWildcard() mediatype.Group {
	if len(e.Produces) == 0 {
		return mediatype.Wildcard()
	}
	return e.Produces
}
