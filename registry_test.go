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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaxgo/router/mediatype"
)

func TestScenario_Literal(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Register("GET", "/foo/bar", HandlerFunc(nil))
	require.NoError(t, err)
	reg.Freeze()

	match, err := reg.Resolve("GET", "/foo/bar", nil)
	require.NoError(t, err)
	assert.Equal(t, "/foo/bar", match.Endpoint.Template)
	assert.Empty(t, match.Values)
}

func TestScenario_PureVariable(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Register("GET", "/foo/{bar}", HandlerFunc(nil))
	require.NoError(t, err)
	reg.Freeze()

	match, err := reg.Resolve("GET", "/foo/xyz", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"bar": "xyz"}, match.Values)
}

func TestScenario_RegexVariable(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Register("GET", `/item/{id:\d+}`, HandlerFunc(nil))
	require.NoError(t, err)
	reg.Freeze()

	match, err := reg.Resolve("GET", "/item/42", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "42"}, match.Values)

	_, err = reg.Resolve("GET", "/item/abc", nil)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestScenario_VerbMismatch(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Register("GET", "/p", HandlerFunc(nil))
	require.NoError(t, err)
	reg.Freeze()

	_, err = reg.Resolve("POST", "/p", nil)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestScenario_MediaArbitration_FewerWildcardsWins(t *testing.T) {
	t.Parallel()

	reg := New()
	jsonEndpoint, err := reg.Register("GET", "/r", HandlerFunc(nil), Consumes(mediatype.Group{{Type: "application", Subtype: "json", Q: 1}}))
	require.NoError(t, err)
	_, err = reg.Register("GET", "/r", HandlerFunc(nil), Consumes(mediatype.Wildcard()))
	require.NoError(t, err)
	reg.Freeze()

	headers := http.Header{"Content-Type": []string{"application/json"}}
	match, err := reg.Resolve("GET", "/r", headers)
	require.NoError(t, err)
	assert.Same(t, jsonEndpoint, match.Endpoint)
}

func TestScenario_AcceptQRanking(t *testing.T) {
	t.Parallel()

	reg := New()
	htmlEndpoint, err := reg.Register("GET", "/r", HandlerFunc(nil), Produces(mediatype.Group{{Type: "text", Subtype: "html", Q: 1}}))
	require.NoError(t, err)
	jsonEndpoint, err := reg.Register("GET", "/r", HandlerFunc(nil), Produces(mediatype.Group{{Type: "application", Subtype: "json", Q: 1}}))
	require.NoError(t, err)
	reg.Freeze()

	headers := http.Header{"Accept": []string{"application/json;q=0.9, text/html;q=0.8"}}
	match, err := reg.Resolve("GET", "/r", headers)
	require.NoError(t, err)
	assert.Same(t, jsonEndpoint, match.Endpoint)
	_ = htmlEndpoint
}

func TestScenario_QParseRejection(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Register("GET", "/r", HandlerFunc(nil))
	require.NoError(t, err)
	reg.Freeze()

	headers := http.Header{"Accept": []string{"x/y;q=0.1234"}}
	_, err = reg.Resolve("GET", "/r", headers)
	assert.ErrorIs(t, err, ErrMediaTypeParse)
}

func TestScenario_WildcardTypeConcreteSubtypeRejection(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Register("GET", "/r", HandlerFunc(nil))
	require.NoError(t, err)
	reg.Freeze()

	headers := http.Header{"Accept": []string{"*/json"}}
	_, err = reg.Resolve("GET", "/r", headers)
	assert.ErrorIs(t, err, ErrMediaTypeParse)
}

func TestRegister_AfterFreezeFails(t *testing.T) {
	t.Parallel()

	reg := New()
	reg.Freeze()

	_, err := reg.Register("GET", "/p", HandlerFunc(nil))
	assert.ErrorIs(t, err, ErrAlreadyFrozen)
}

func TestResolve_BeforeFreezeFails(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Register("GET", "/p", HandlerFunc(nil))
	require.NoError(t, err)

	_, err = reg.Resolve("GET", "/p", nil)
	assert.ErrorIs(t, err, ErrNotFrozen)
}

func TestRegister_ConflictingVariableName(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Register("GET", "/foo/{bar}", HandlerFunc(nil))
	require.NoError(t, err)

	_, err = reg.Register("POST", "/foo/{baz}", HandlerFunc(nil))
	assert.ErrorIs(t, err, ErrDuplicateVariableName)
}

func TestRegister_EmptySegmentRejected(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Register("GET", "/foo//bar", HandlerFunc(nil))
	assert.ErrorIs(t, err, ErrEmptySegment)
}

func TestResolve_Determinism(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Register("GET", "/x/{v}", HandlerFunc(nil))
	require.NoError(t, err)
	reg.Freeze()

	first, err := reg.Resolve("GET", "/x/42", nil)
	require.NoError(t, err)
	second, err := reg.Resolve("GET", "/x/42", nil)
	require.NoError(t, err)

	assert.Same(t, first.Endpoint, second.Endpoint)
	assert.Equal(t, first.Values, second.Values)
}

func TestResolve_WithCacheEnabled(t *testing.T) {
	t.Parallel()

	reg := New(WithCache(true))
	ep, err := reg.Register("GET", "/cached/{id}", HandlerFunc(nil))
	require.NoError(t, err)
	reg.Freeze()

	match, err := reg.Resolve("GET", "/cached/1", nil)
	require.NoError(t, err)
	assert.Same(t, ep, match.Endpoint)

	// second call should hit the cache and still resolve identically
	match2, err := reg.Resolve("GET", "/cached/1", nil)
	require.NoError(t, err)
	assert.Equal(t, match.Values, match2.Values)
}

func TestRoutes_Introspection(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Register("GET", "/a/{id}", HandlerFunc(nil), Params(ParamDescriptor{Name: "id", Kind: ParamInt}))
	require.NoError(t, err)
	reg.Freeze()

	routes := reg.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, "GET", routes[0].Method)
	assert.Equal(t, "/a/{id}", routes[0].PathTemplate)
	assert.Equal(t, []string{"id"}, routes[0].ParamNames)
}

func TestDiagnostics_AmbiguousMatchEmitted(t *testing.T) {
	t.Parallel()

	var events []DiagnosticEvent
	reg := New(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		events = append(events, e)
	})))

	_, err := reg.Register("GET", "/r", HandlerFunc(nil), Produces(mediatype.Group{{Type: "text", Subtype: "html", Q: 1}}))
	require.NoError(t, err)
	_, err = reg.Register("GET", "/r", HandlerFunc(nil), Produces(mediatype.Group{{Type: "application", Subtype: "json", Q: 1}}))
	require.NoError(t, err)
	reg.Freeze()

	headers := http.Header{"Accept": []string{"text/html, application/json"}}
	_, err = reg.Resolve("GET", "/r", headers)
	require.NoError(t, err)

	var sawAmbiguous bool
	for _, e := range events {
		if e.Kind == DiagAmbiguousMatch {
			sawAmbiguous = true
		}
	}
	assert.True(t, sawAmbiguous)
}
