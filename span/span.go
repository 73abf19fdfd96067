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

// Package span provides a borrowed, zero-copy view over a substring.
//
// Media-type and URI-template parsing both scan the same header or path
// text many times over: once to tokenize, again to compare candidates,
// again to hash for a map key. Passing a Span (source string, start, end)
// through that pipeline instead of allocating a new string at every step
// removes the allocation tax from the hot parse-and-rank path.
package span

import "sync/atomic"

// Span is a borrowed view over a range of a source string. It is a small
// value type and is cheap to copy; equality and hashing only ever look at
// the referenced character range, never the full source.
//
// The materialized-string/hash cache is held behind a shared pointer so
// that copies of the same Span (e.g. passed through several return values
// during parsing) reuse one cache rather than each recomputing its own.
type Span struct {
	source string
	start  int
	end    int
	cache  *atomic.Pointer[spanCache]
}

type spanCache struct {
	materialized string
	hasMaterial  bool
	hash         uint64
	hashed       bool
}

// New returns a Span over source[start:end]. It panics if the range is
// invalid; callers control both ends of this range during parsing, so an
// invalid range indicates a parser bug rather than bad input.
func New(source string, start, end int) Span {
	if start < 0 || end < start || end > len(source) {
		panic("span: invalid range")
	}
	return Span{source: source, start: start, end: end, cache: new(atomic.Pointer[spanCache])}
}

// Full returns a Span over the entirety of source.
func Full(source string) Span {
	return New(source, 0, len(source))
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.end - s.start
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.start == s.end
}

// At returns the byte at position i within the span.
func (s Span) At(i int) byte {
	return s.source[s.start+i]
}

// Sub returns a span over s[start:end], relative to s itself. It returns s
// unchanged (cache included) when the requested range is the full span.
func (s Span) Sub(start, end int) Span {
	if start == 0 && end == s.Len() {
		return s
	}
	return New(s.source, s.start+start, s.start+end)
}

// Equal reports whether s and o denote character-for-character identical
// content. Spans over different source strings (or different ranges of the
// same source) can still be Equal.
func (s Span) Equal(o Span) bool {
	if s.Len() != o.Len() {
		return false
	}
	if s.source == o.source && s.start == o.start {
		return true
	}
	return s.source[s.start:s.end] == o.source[o.start:o.end]
}

// EqualString reports whether the span's content equals str.
func (s Span) EqualString(str string) bool {
	return s.Len() == len(str) && s.source[s.start:s.end] == str
}

// fnvOffset64 and fnvPrime64 are the 64-bit FNV-1a constants used by Hash.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Hash returns a cached FNV-1a hash of the span's content, computing it on
// first call. The cache is stored behind an atomic pointer so concurrent
// callers never race on the write; at worst two goroutines both compute
// the identical hash and only one CAS wins, which is harmless since the
// value is idempotent.
func (s Span) Hash() uint64 {
	if s.cache != nil {
		if c := s.cache.Load(); c != nil && c.hashed {
			return c.hash
		}
	}

	h := uint64(fnvOffset64)
	for i := s.start; i < s.end; i++ {
		h ^= uint64(s.source[i])
		h *= fnvPrime64
	}

	s.storeCache(func(c *spanCache) { c.hash = h; c.hashed = true })

	return h
}

// String materializes the span into an owned string, caching the result so
// repeated calls do not re-allocate. Callers on the hot parse/compare path
// should avoid calling this until a value is ready to leave the package
// (e.g. handed to user code as a path parameter).
func (s Span) String() string {
	if s.cache != nil {
		if c := s.cache.Load(); c != nil && c.hasMaterial {
			return c.materialized
		}
	}
	if s.Empty() {
		return ""
	}

	materialized := s.source[s.start:s.end]
	s.storeCache(func(c *spanCache) { c.materialized = materialized; c.hasMaterial = true })

	return materialized
}

// storeCache merges the result of mutate into the cache, installing a new
// cache value with CAS if none exists yet or carrying forward the existing
// fields otherwise. A Span built via the zero value has no cache pointer
// and simply skips caching rather than panicking.
func (s Span) storeCache(mutate func(*spanCache)) {
	if s.cache == nil {
		return
	}
	for {
		old := s.cache.Load()
		next := &spanCache{}
		if old != nil {
			*next = *old
		}
		mutate(next)
		if s.cache.CompareAndSwap(old, next) {
			return
		}
	}
}
