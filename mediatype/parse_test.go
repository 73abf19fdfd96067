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

package mediatype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Simple(t *testing.T) {
	t.Parallel()

	g, err := Parse("application/json")
	require.NoError(t, err)
	require.Len(t, g, 1)
	assert.Equal(t, "application", g[0].Type)
	assert.Equal(t, "json", g[0].Subtype)
	assert.Equal(t, 1.0, g[0].Q)
}

func TestParse_MultipleRangesWithQ(t *testing.T) {
	t.Parallel()

	g, err := Parse("text/html;q=0.8, application/json;q=0.9, */*;q=0.1")
	require.NoError(t, err)
	require.Len(t, g, 3)

	assert.Equal(t, "text", g[0].Type)
	assert.Equal(t, 0.8, g[0].Q)

	assert.Equal(t, "application", g[1].Type)
	assert.Equal(t, 0.9, g[1].Q)

	assert.True(t, g[2].TypeWildcard())
	assert.True(t, g[2].SubtypeWildcard())
	assert.Equal(t, 0.1, g[2].Q)
}

func TestParse_ParametersPreserveOrder(t *testing.T) {
	t.Parallel()

	g, err := Parse(`application/json;charset=utf-8;version=2`)
	require.NoError(t, err)
	require.Len(t, g, 1)
	require.Len(t, g[0].Params, 2)
	assert.Equal(t, "charset", g[0].Params[0].Name)
	assert.Equal(t, "utf-8", g[0].Params[0].Value.String())
	assert.Equal(t, "version", g[0].Params[1].Name)
	assert.Equal(t, "2", g[0].Params[1].Value.String())
}

func TestParse_QuotedStringParam(t *testing.T) {
	t.Parallel()

	g, err := Parse(`multipart/form-data;boundary="---- a b;c\"d"`)
	require.NoError(t, err)
	require.Len(t, g, 1)
	v, ok := g[0].Param("boundary")
	require.True(t, ok)
	assert.Equal(t, `---- a b;c\"d`, v)
}

func TestParse_LeadingCommaRejected(t *testing.T) {
	t.Parallel()

	_, err := Parse(", application/json")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, perr.Offset)
}

func TestParse_WildcardConcreteSubtypeRejected(t *testing.T) {
	t.Parallel()

	_, err := Parse("*/json")
	require.Error(t, err)
}

func TestParse_InvalidQValueRejected(t *testing.T) {
	t.Parallel()

	cases := []string{
		"application/json;q=1.0001",
		"application/json;q=2",
		"application/json;q=-0.1",
		"application/json;q=abc",
	}
	for _, c := range cases {
		_, err := Parse(c)
		assert.Error(t, err, c)
	}
}

func TestParse_TrailingGarbageFailsWithOffset(t *testing.T) {
	t.Parallel()

	_, err := Parse("application/json)")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, len("application/json"), perr.Offset)
}

func TestParse_EmptyHeaderYieldsEmptyGroup(t *testing.T) {
	t.Parallel()

	g, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, g)
}

func TestMediaType_StringRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"application/json",
		"text/html;charset=utf-8",
		"application/json;q=0.5",
		`multipart/form-data;boundary="abc def"`,
	}
	for _, in := range inputs {
		g, err := Parse(in)
		require.NoError(t, err, in)
		require.Len(t, g, 1)

		out := g[0].String()
		g2, err := Parse(out)
		require.NoError(t, err, out)
		require.Len(t, g2, 1)
		assert.True(t, g[0].Equal(g2[0]), "round-trip mismatch: %s -> %s", in, out)
	}
}

func TestWildcard(t *testing.T) {
	t.Parallel()

	g := Wildcard()
	require.Len(t, g, 1)
	assert.True(t, g[0].TypeWildcard())
	assert.True(t, g[0].SubtypeWildcard())
	assert.Equal(t, 1.0, g[0].Q)
}
