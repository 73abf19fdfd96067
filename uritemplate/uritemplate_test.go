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

package uritemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LiteralOnly(t *testing.T) {
	t.Parallel()

	segs, err := Parse("/a/b/c")
	require.NoError(t, err)
	require.Len(t, segs, 3)
	for i, want := range []string{"a", "b", "c"} {
		require.Len(t, segs[i].Tokens, 1)
		assert.Equal(t, Literal, segs[i].Tokens[0].Kind)
		assert.Equal(t, want, segs[i].Tokens[0].Text)
	}
}

func TestParse_PureVar(t *testing.T) {
	t.Parallel()

	segs, err := Parse("/users/{id}")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	require.Len(t, segs[1].Tokens, 1)
	assert.Equal(t, PureVar, segs[1].Tokens[0].Kind)
	assert.Equal(t, "id", segs[1].Tokens[0].Text)
}

func TestParse_RegexVar(t *testing.T) {
	t.Parallel()

	segs, err := Parse(`/users/{id:\d+}`)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	require.Len(t, segs[1].Tokens, 1)
	tok := segs[1].Tokens[0]
	assert.Equal(t, RegexVar, tok.Kind)
	assert.Equal(t, "id", tok.Text)
	assert.Equal(t, `\d+`, tok.Regex)
}

func TestParse_MixedTokensInSegment(t *testing.T) {
	t.Parallel()

	segs, err := Parse("/files/prefix-{id}.txt")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	require.Len(t, segs[1].Tokens, 3)
	assert.Equal(t, Literal, segs[1].Tokens[0].Kind)
	assert.Equal(t, "prefix-", segs[1].Tokens[0].Text)
	assert.Equal(t, PureVar, segs[1].Tokens[1].Kind)
	assert.Equal(t, "id", segs[1].Tokens[1].Text)
	assert.Equal(t, Literal, segs[1].Tokens[2].Kind)
	assert.Equal(t, ".txt", segs[1].Tokens[2].Text)
}

func TestParse_RegexWithNestedBraces(t *testing.T) {
	t.Parallel()

	segs, err := Parse(`/codes/{code:[0-9]{3}}`)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	tok := segs[1].Tokens[0]
	assert.Equal(t, RegexVar, tok.Kind)
	assert.Equal(t, "[0-9]{3}", tok.Regex)
}

func TestParse_VarWithSurroundingOWS(t *testing.T) {
	t.Parallel()

	segs, err := Parse("/users/{ id : \\d+ }")
	require.NoError(t, err)
	tok := segs[1].Tokens[0]
	assert.Equal(t, RegexVar, tok.Kind)
	assert.Equal(t, "id", tok.Text)
	assert.Equal(t, `\d+`, tok.Regex)
}

func TestParse_UnterminatedVariableFails(t *testing.T) {
	t.Parallel()

	_, err := Parse("/users/{id")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParse_EmptyVariableNameFails(t *testing.T) {
	t.Parallel()

	_, err := Parse("/users/{}")
	require.Error(t, err)
}

func TestParse_RootPath(t *testing.T) {
	t.Parallel()

	segs, err := Parse("/")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Empty(t, segs[0].Tokens)
}

func TestParse_VariableNameWithDotsAndDashes(t *testing.T) {
	t.Parallel()

	segs, err := Parse("/x/{my.var-name}")
	require.NoError(t, err)
	assert.Equal(t, "my.var-name", segs[1].Tokens[0].Text)
}
