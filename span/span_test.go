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

package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Basic(t *testing.T) {
	t.Parallel()

	s := New("application/json", 0, 11)
	assert.Equal(t, 11, s.Len())
	assert.Equal(t, "application", s.String())
}

func TestFull(t *testing.T) {
	t.Parallel()

	s := Full("text/html")
	assert.Equal(t, "text/html", s.String())
}

func TestNew_InvalidRangePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { New("abc", 2, 1) })
	assert.Panics(t, func() { New("abc", -1, 2) })
	assert.Panics(t, func() { New("abc", 0, 10) })
}

func TestSub_FullRangeReturnsSameSpan(t *testing.T) {
	t.Parallel()

	s := Full("abcdef")
	sub := s.Sub(0, s.Len())
	assert.True(t, s.Equal(sub))

	// Materializing through the sub-span should hit the same cache.
	_ = s.String()
	assert.Equal(t, "abcdef", sub.String())
}

func TestSub_Subrange(t *testing.T) {
	t.Parallel()

	s := New("/users/42/posts", 1, len("/users/42/posts"))
	seg := s.Sub(0, 5)
	assert.Equal(t, "users", seg.String())
}

func TestEqual_CrossSource(t *testing.T) {
	t.Parallel()

	a := New("application/json;q=0.9", 0, 16)
	b := New("application/json", 0, 16)
	assert.True(t, a.Equal(b))

	c := New("application/xml", 0, 15)
	assert.False(t, a.Equal(c))
}

func TestEqualString(t *testing.T) {
	t.Parallel()

	s := New("text/html", 0, 4)
	assert.True(t, s.EqualString("text"))
	assert.False(t, s.EqualString("text/html"))
}

func TestHash_ConsistentAndCached(t *testing.T) {
	t.Parallel()

	s := New("application/json", 0, 11)
	h1 := s.Hash()
	h2 := s.Hash()
	require.Equal(t, h1, h2)

	other := New("application/xml", 0, 11)
	assert.Equal(t, h1, other.Hash(), "equal content must hash equal across distinct sources")
}

func TestHash_DiffersForDifferentContent(t *testing.T) {
	t.Parallel()

	a := New("application/json", 0, 11)
	b := New("application/json", 0, 10)
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestString_EmptySpan(t *testing.T) {
	t.Parallel()

	s := New("abc", 1, 1)
	assert.True(t, s.Empty())
	assert.Equal(t, "", s.String())
}

func TestZeroValueSpanDoesNotPanic(t *testing.T) {
	t.Parallel()

	var s Span
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.String())
	assert.NotPanics(t, func() { s.Hash() })
}

func TestString_IdempotentAcrossCopies(t *testing.T) {
	t.Parallel()

	s := New("application/json", 0, 11)
	copy1 := s
	copy2 := s

	assert.Equal(t, "application", copy1.String())
	assert.Equal(t, "application", copy2.String())
	assert.Equal(t, copy1.Hash(), copy2.Hash())
}
