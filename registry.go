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

// Package router is the endpoint registry: it binds HTTP verb + URI
// template + media-type constraints to an Endpoint (component G), arbitrates
// between endpoints that share a path using the mediatype package's total
// order (component C), and converts bound path parameters into positional
// arguments (component H).
//
// Registration (Register) is single-threaded and happens entirely before
// Freeze. After Freeze, the dispatch trie built up during registration is
// published with a single atomic pointer swap and Resolve is safe for
// concurrent use from many goroutines; no lock is taken on the hot path.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/jaxgo/router/dispatch"
	"github.com/jaxgo/router/mediatype"
	"github.com/jaxgo/router/uritemplate"
)

// state is the immutable snapshot published atomically at Freeze: the
// built trie plus the flat list of endpoint groups used for introspection.
// Once published it is never mutated, only replaced wholesale.
type state struct {
	trie   *dispatch.Registry
	groups []*endpointGroup
}

// endpointGroup is all endpoints registered for one (verb, template) pair.
// The dispatch trie holds exactly one binding per (node, verb) — see
// dispatch.Registry.Register — so multiple endpoints sharing a path are
// modeled here as one group bound once into the trie, with media-type
// arbitration among the group's members happening in Resolve rather than
// in the trie itself. This is the generalization spec.md §4.8's preamble
// points at ("implementations may instead pre-filter by path equality").
type endpointGroup struct {
	method    string
	template  string
	endpoints []*Endpoint
}

// Registry is the endpoint registry described by spec.md §6. It owns a
// dispatch.Registry (the trie) during a single-threaded registration
// phase, then publishes it atomically at Freeze.
//
// CRITICAL: live MUST be the first field so atomic.StorePointer/
// LoadPointer operate on a properly 8-byte-aligned word on every
// supported architecture; this mirrors the field-order requirement on
// atomicRouteTree in the teacher's routes.go.
type Registry struct {
	live unsafe.Pointer // *state, published at Freeze

	mu             sync.Mutex // guards building/buildingGroups/frozen during registration
	frozen         bool
	building       *dispatch.Registry
	buildingGroups map[string]*endpointGroup // key: method + "\x00" + template
	groupOrder     []string                  // preserves registration order for introspection

	cacheEnabled bool
	cache        unsafe.Pointer // *sync.Map, (verb,uri) -> *dispatch.BestMatch; swapped at Freeze

	diagnostics DiagnosticHandler
	observer    Observer
}

func init() {
	if unsafe.Sizeof(unsafe.Pointer(nil)) != 8 {
		panic("router: requires a 64-bit architecture for atomic pointer operations")
	}
	var reg Registry
	if unsafe.Offsetof(reg.live) != 0 {
		panic("router: Registry.live must be the first field for proper atomic alignment")
	}
}

// New returns an empty, unfrozen Registry ready to accept Register calls.
func New(opts ...Option) *Registry {
	reg := &Registry{
		building:       dispatch.New(),
		buildingGroups: make(map[string]*endpointGroup),
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// RouteOption configures a single Register call: consumes/produces media
// constraints and parameter descriptors, following the same functional
// options shape as Option.
type RouteOption func(*Endpoint)

// Consumes restricts the endpoint to requests whose Content-Type is
// compatible with one of group's media ranges.
func Consumes(group mediatype.Group) RouteOption {
	return func(e *Endpoint) { e.Consumes = group }
}

// Produces declares the media ranges the endpoint returns. Resolve ranks
// them against the request's Accept header only to choose among endpoints
// that tie on Content-Type; an incompatible Accept header does not by
// itself exclude the endpoint.
func Produces(group mediatype.Group) RouteOption {
	return func(e *Endpoint) { e.Produces = group }
}

// Params declares the endpoint's parameter descriptors, in the order
// ConvertArgs should produce positional arguments.
func Params(params ...ParamDescriptor) RouteOption {
	return func(e *Endpoint) { e.Params = append(e.Params, params...) }
}

// Register binds method and template to handler, applying opts. It fails
// with ErrAlreadyFrozen if called after Freeze, ErrTemplateParse on a
// malformed template, ErrEmptySegment for a bare "//" segment,
// ErrDuplicateVariableName when a variable name conflicts with one
// already registered at the same trie path, and ErrDuplicateRegexPattern
// when two templates assemble to the same regex at the same path.
//
// Two Register calls for the exact same (method, template) pair are not
// an error: they accumulate into one endpoint group, disambiguated later
// by media type (§4.8). This is what lets two endpoints share a path with
// different Consumes/Produces declarations (spec.md §4.8, scenario 5).
func (reg *Registry) Register(method, template string, handler Handler, opts ...RouteOption) (*Endpoint, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.frozen {
		return nil, ErrAlreadyFrozen
	}

	segments, err := uritemplate.Parse(template)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateParse, err)
	}
	for _, seg := range segments {
		if len(seg.Tokens) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptySegment, template)
		}
	}

	method = strings.ToUpper(method)

	endpoint := &Endpoint{Method: method, Template: template, Handler: handler}
	for _, opt := range opts {
		opt(endpoint)
	}

	key := method + "\x00" + template
	group, exists := reg.buildingGroups[key]
	if !exists {
		group = &endpointGroup{method: method, template: template}
		reg.buildingGroups[key] = group
		reg.groupOrder = append(reg.groupOrder, key)

		if err := reg.building.Register(segments, method, group); err != nil {
			delete(reg.buildingGroups, key)
			reg.groupOrder = reg.groupOrder[:len(reg.groupOrder)-1]
			return nil, translateDispatchError(err)
		}
	}
	group.endpoints = append(group.endpoints, endpoint)

	reg.emit(DiagRouteRegistered, "route registered", map[string]any{
		"method":   method,
		"template": template,
	})

	return endpoint, nil
}

// translateDispatchError maps a dispatch-package registration error onto
// this package's own sentinel errors, per the §7 error table, so callers
// depending only on this package can match with errors.Is without also
// importing dispatch.
func translateDispatchError(err error) error {
	if err == nil {
		return nil
	}
	for _, mapping := range dispatchErrorMappings {
		if errors.Is(err, mapping.from) {
			return fmt.Errorf("%w: %w", mapping.to, err)
		}
	}
	return err
}

type dispatchErrMapping struct {
	from error
	to   error
}

var dispatchErrorMappings = []dispatchErrMapping{
	{dispatch.ErrConflictingVariableName, ErrDuplicateVariableName},
	{dispatch.ErrDuplicateRegexPattern, ErrDuplicateRegexPattern},
	{dispatch.ErrDuplicateBinding, ErrDuplicateEndpointBinding},
}

// Freeze publishes the registry's dispatch trie atomically: after Freeze
// returns, Resolve is safe for concurrent use from any number of
// goroutines, and Register always fails with ErrAlreadyFrozen. Calling
// Freeze more than once is a no-op after the first call.
func (reg *Registry) Freeze() {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.frozen {
		return
	}

	groups := make([]*endpointGroup, 0, len(reg.groupOrder))
	for _, key := range reg.groupOrder {
		groups = append(groups, reg.buildingGroups[key])
	}

	s := &state{trie: reg.building, groups: groups}
	atomic.StorePointer(&reg.live, unsafe.Pointer(s))

	if reg.cacheEnabled {
		atomic.StorePointer(&reg.cache, unsafe.Pointer(new(sync.Map)))
	}

	reg.frozen = true
	reg.building = nil
	reg.buildingGroups = nil

	reg.emit(DiagCacheInvalidated, "registry frozen, cache reset", nil)
}

// Match is the resolved outcome of a successful Resolve call: the winning
// endpoint plus the path parameters bound to it (spec.md §3 "Best-match
// info").
type Match struct {
	Endpoint *Endpoint
	Values   map[string]string
}

// Resolve implements spec.md §4.8: it combines the dispatch trie's path
// match with media-type arbitration to pick exactly one endpoint.
//
//  1. Parse Content-Type and Accept from headers, defaulting to "*/*"
//     (q=1) when absent.
//  2. Look up (method, uri) in the dispatch trie (optionally through the
//     best-match cache) to find the group of endpoints registered at that
//     path and verb.
//  3. Cross every (client, server) media-range pair for both Consumes and
//     Produces, building two independently-ranked candidate lists.
//  4. Pick the top Content-Type candidate; on a tie, break it using the
//     top Accept candidate instead, emitting DiagAmbiguousMatch if that
//     also ties.
func (reg *Registry) Resolve(method, uri string, headers http.Header) (*Match, error) {
	start := time.Now()
	match, err := reg.resolve(method, uri, headers)
	if reg.observer != nil {
		outcome := "matched"
		template := ""
		switch {
		case err != nil:
			outcome = "no_match"
		case match != nil:
			template = match.Endpoint.Template
		}
		reg.observer.RecordResolve(method, template, outcome, time.Since(start).Nanoseconds())
	}
	return match, err
}

func (reg *Registry) resolve(method, uri string, headers http.Header) (*Match, error) {
	livePtr := atomic.LoadPointer(&reg.live)
	if livePtr == nil {
		return nil, ErrNotFrozen
	}
	s := (*state)(livePtr)

	method = strings.ToUpper(method)

	clientContentType, err := parseHeaderGroup(headers, "Content-Type")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMediaTypeParse, err)
	}
	clientAccept, err := parseHeaderGroup(headers, "Accept")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMediaTypeParse, err)
	}

	group, values, ok := reg.bestMatch(s, method, uri)
	if !ok {
		return nil, ErrNoMatch
	}

	endpoint, err := reg.arbitrate(group, clientContentType, clientAccept)
	if err != nil {
		return nil, err
	}

	return &Match{Endpoint: endpoint, Values: values}, nil
}

// bestMatch resolves (method, uri) against the trie, consulting the
// best-match cache first when enabled. It returns the matched
// endpointGroup and its bound path-parameter values.
func (reg *Registry) bestMatch(s *state, method, uri string) (*endpointGroup, map[string]string, bool) {
	if reg.cacheEnabled {
		if cached, ok := reg.cacheLookup(method, uri); ok {
			if cached == nil {
				return nil, nil, false
			}
			return cached.Binding.(*endpointGroup), cached.Values, true
		}
	}

	best := dispatch.Best(s.trie.Lookup(method, uri))

	if reg.cacheEnabled {
		reg.cacheStore(method, uri, best)
	}

	if best == nil {
		return nil, nil, false
	}
	return best.Binding.(*endpointGroup), best.Values, true
}

// parseHeaderGroup looks up name case-insensitively in headers (via
// http.Header.Get, which already canonicalizes) and parses it as a
// mediatype.Group, defaulting to the wildcard group when absent.
func parseHeaderGroup(headers http.Header, name string) (mediatype.Group, error) {
	if headers == nil {
		return mediatype.Wildcard(), nil
	}
	raw := headers.Get(name)
	if raw == "" {
		return mediatype.Wildcard(), nil
	}
	return mediatype.Parse(raw)
}

// combinedCandidate pairs a Combined ranking value with the endpoint it
// was computed for, so the winning entry can be recovered after sorting.
type combinedCandidate struct {
	combined mediatype.Combined
	endpoint *Endpoint
}

// arbitrate implements §4.8 steps 2-5 over the endpoints in group.
func (reg *Registry) arbitrate(group *endpointGroup, clientContentType, clientAccept mediatype.Group) (*Endpoint, error) {
	var contentCandidates, acceptCandidates []combinedCandidate

	for _, ep := range group.endpoints {
		for _, client := range clientContentType {
			for _, server := range ep.consumesOrWildcard() {
				c := mediatype.Combine(client, server)
				if !c.Incompatible {
					contentCandidates = append(contentCandidates, combinedCandidate{c, ep})
				}
			}
		}
		for _, client := range clientAccept {
			for _, server := range ep.producesOrWildcard() {
				c := mediatype.Combine(client, server)
				if !c.Incompatible {
					acceptCandidates = append(acceptCandidates, combinedCandidate{c, ep})
				}
			}
		}
	}

	if len(contentCandidates) == 0 {
		return nil, ErrNoMatch
	}

	sortCandidates(contentCandidates)

	if len(contentCandidates) == 1 || mediatype.Less(contentCandidates[0].combined, contentCandidates[1].combined) || mediatype.Less(contentCandidates[1].combined, contentCandidates[0].combined) {
		return contentCandidates[0].endpoint, nil
	}

	// Top two content-type candidates compare equal: break the tie on Accept.
	if len(acceptCandidates) == 0 {
		return contentCandidates[0].endpoint, nil
	}
	sortCandidates(acceptCandidates)

	if len(acceptCandidates) >= 2 && !mediatype.Less(acceptCandidates[0].combined, acceptCandidates[1].combined) && !mediatype.Less(acceptCandidates[1].combined, acceptCandidates[0].combined) {
		reg.emit(DiagAmbiguousMatch, "ambiguous content negotiation, both content-type and accept tied", map[string]any{
			"template": group.template,
			"verb":     group.method,
		})
	}

	return acceptCandidates[0].endpoint, nil
}

// sortCandidates stable-sorts candidates in descending rank order
// (best-ranked first), per mediatype.Less's "higher is better" contract.
func sortCandidates(candidates []combinedCandidate) {
	// Simple insertion sort: candidate lists are bounded by the number of
	// client media ranges times server media ranges for one path, which is
	// small in practice (a handful of Accept ranges by a handful of
	// produces declarations), so an O(n^2) stable sort keeps this
	// allocation-free rather than reaching for sort.Slice's closures.
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && mediatype.Less(candidates[j].combined, candidates[j-1].combined); j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}
}
