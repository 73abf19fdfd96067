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
	"sync"
	"sync/atomic"

	"github.com/jaxgo/router/dispatch"
)

// cacheLookup reads the best-match cache, returning ok=false on a miss.
// A hit with a nil *dispatch.BestMatch records a cached "no match". The
// cache is only ever consulted and populated when WithCache(true) was
// passed to New; Freeze installs a fresh, empty sync.Map, so entries never
// survive a rebuild (spec.md §5: "invalidation on rebuild only").
func (reg *Registry) cacheLookup(method, uri string) (*dispatch.BestMatch, bool) {
	cachePtr := atomic.LoadPointer(&reg.cache)
	if cachePtr == nil {
		return nil, false
	}
	m := (*sync.Map)(cachePtr)
	v, ok := m.Load(cacheKey(method, uri))
	if !ok {
		return nil, false
	}
	return v.(*dispatch.BestMatch), true
}

// cacheStore records best (which may be nil, for "no match") under
// (method, uri). LoadOrStore ensures at-most-one computation is visible
// per key even if two goroutines race to populate the same miss.
func (reg *Registry) cacheStore(method, uri string, best *dispatch.BestMatch) {
	cachePtr := atomic.LoadPointer(&reg.cache)
	if cachePtr == nil {
		return
	}
	m := (*sync.Map)(cachePtr)
	m.LoadOrStore(cacheKey(method, uri), best)
}

func cacheKey(method, uri string) string {
	return method + "\x00" + uri
}
