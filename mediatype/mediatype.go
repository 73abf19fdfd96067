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

// Package mediatype parses Content-Type/Accept-style headers into ordered
// media ranges with q-values and parameters (RFC 7230 §3.2.6, RFC 7231
// §5.3.2), and ranks (client, server) media-type pairs per the JAX-RS
// §3.7.2 content-negotiation rules.
//
// Parsing borrows spans over the original header text (see package
// github.com/jaxgo/router/span) instead of allocating a substring per
// token; callers that need an owned string call Param.Value.String() or
// MediaType.String() only once a value is ready to leave this package.
package mediatype

import (
	"strings"

	"github.com/jaxgo/router/span"
)

// QualityKey is the parameter name treated specially as the quality value.
// It is exported so callers embedding a custom registry can recognize it
// without re-parsing, mirroring the teacher's "q" special-case in
// parseAcceptParam but generalized to a named constant.
const QualityKey = "q"

// Param is a single "name=value" media-type parameter, preserving its
// source span so equality/hash can stay allocation-free until the value
// is materialized.
type Param struct {
	Name  string
	Value span.Span
}

// MediaType is a single parsed media range: {type, subtype, ordered
// parameters, q}. Equality is case-insensitive on type/subtype, exact on
// q, and case-sensitive on parameter values.
type MediaType struct {
	Type    string // lowercased; "*" denotes a wildcard
	Subtype string // lowercased; "*" denotes a wildcard
	Params  []Param
	Q       float64 // in [0, 1], at most 3 decimal digits

	// raw is the original span this media type was parsed from, retained
	// for diagnostics and for span-based re-emission in tests (P5).
	raw span.Span
}

// TypeWildcard reports whether the type component is "*".
func (m MediaType) TypeWildcard() bool { return m.Type == "*" }

// SubtypeWildcard reports whether the subtype component is "*".
func (m MediaType) SubtypeWildcard() bool { return m.Subtype == "*" }

// Param looks up a parameter by name (case-insensitive on the name, as
// RFC 7231 token comparison requires) and reports whether it was present.
func (m MediaType) Param(name string) (string, bool) {
	for _, p := range m.Params {
		if strings.EqualFold(p.Name, name) {
			return p.Value.String(), true
		}
	}
	return "", false
}

// Equal reports whether two media types denote the same range: same
// type/subtype case-insensitively, same q exactly, same parameters in the
// same order with case-sensitive values.
func (m MediaType) Equal(o MediaType) bool {
	if !strings.EqualFold(m.Type, o.Type) || !strings.EqualFold(m.Subtype, o.Subtype) {
		return false
	}
	if m.Q != o.Q {
		return false
	}
	if len(m.Params) != len(o.Params) {
		return false
	}
	for i := range m.Params {
		if !strings.EqualFold(m.Params[i].Name, o.Params[i].Name) {
			return false
		}
		if m.Params[i].Value.String() != o.Params[i].Value.String() {
			return false
		}
	}
	return true
}

// String renders the media type back into its wire form: "type/subtype"
// followed by ";name=value" for each parameter in source order, and a
// trailing ";q=..." if Q is not the default 1. This supports the parse
// round-trip property (P5): reparsing String() yields an equivalent
// MediaType.
func (m MediaType) String() string {
	var b strings.Builder
	b.WriteString(m.Type)
	b.WriteByte('/')
	b.WriteString(m.Subtype)
	for _, p := range m.Params {
		b.WriteByte(';')
		b.WriteString(p.Name)
		b.WriteByte('=')
		writeParamValue(&b, p.Value.String())
	}
	if m.Q != 1 {
		b.WriteString(";q=")
		b.WriteString(formatQuality(m.Q))
	}
	return b.String()
}

// writeParamValue quotes the value if it is not a valid bare token.
func writeParamValue(b *strings.Builder, v string) {
	if v != "" && isToken(v) {
		b.WriteString(v)
		return
	}
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
}

// Group is an ordered sequence of media types, preserving the input
// header's range order (needed for tie-break stability during arbitration).
type Group []MediaType

// Wildcard is the default group used when a header is absent: "*/*" with
// q=1.
func Wildcard() Group {
	return Group{{Type: "*", Subtype: "*", Q: 1}}
}

// String re-joins the group with ", " between ranges, for diagnostics.
func (g Group) String() string {
	parts := make([]string, len(g))
	for i, m := range g {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}
