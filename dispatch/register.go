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

package dispatch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jaxgo/router/uritemplate"
)

// Registry owns the trie's root and is mutated only during the
// single-threaded registration phase: no locking is needed here because
// Register is never called concurrently with itself or with a lookup.
type Registry struct {
	root *node
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{root: newNode()}
}

// Register binds verb at the path described by segments to handle. At
// each segment it picks a word, variable, or regex child per classify;
// the first segment that isn't a pure literal or pure variable switches
// the rest of the path into a single regex child that swallows every
// remaining segment.
func (reg *Registry) Register(segments []uritemplate.Segment, verb string, handle any) error {
	cur := reg.root

	for i := 0; i < len(segments); i++ {
		seg := segments[i]

		switch classify(seg) {
		case kindLiteral:
			text := seg.Tokens[0].Text
			child, ok := cur.words[text]
			if !ok {
				child = newNode()
				cur.words[text] = child
			}
			cur = child

		case kindPureVar:
			name := seg.Tokens[0].Text
			if cur.variable == nil {
				cur.variable = &variableChild{name: name, node: newNode()}
			} else if cur.variable.name != name {
				return fmt.Errorf("%w: %q vs %q", ErrConflictingVariableName, cur.variable.name, name)
			}
			cur = cur.variable.node

		case kindRegex:
			child, err := reg.registerRegexSegment(cur, segments[i:])
			if err != nil {
				return err
			}
			cur = child
			i = len(segments) // regex children swallow every remaining segment
		}
	}

	if cur.bindings == nil {
		cur.bindings = make(map[string]any)
	}
	if _, exists := cur.bindings[verb]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBinding, verb)
	}
	cur.bindings[verb] = handle

	return nil
}

type segmentKind int

const (
	kindLiteral segmentKind = iota
	kindPureVar
	kindRegex
)

// classify picks the trie child kind a segment's token list maps to: a
// lone literal token is a Word child, a lone pure-variable token is the
// FullSegmentVar child, and anything else (a constrained variable, or
// more than one token) falls into regex mode.
func classify(seg uritemplate.Segment) segmentKind {
	if len(seg.Tokens) == 1 {
		switch seg.Tokens[0].Kind {
		case uritemplate.Literal:
			return kindLiteral
		case uritemplate.PureVar:
			return kindPureVar
		}
	}
	return kindRegex
}

// registerRegexSegment assembles the remaining segments (the one that
// triggered regex mode, and everything after it) into a single compiled
// pattern and attaches it to cur as a new or existing RegexSegment child.
func (reg *Registry) registerRegexSegment(cur *node, remaining []uritemplate.Segment) (*node, error) {
	pattern, groupNames, err := assemblePattern(remaining)
	if err != nil {
		return nil, err
	}

	for _, rc := range cur.regexes {
		if rc.source == pattern {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRegexPattern, pattern)
		}
	}

	compiled, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConstraint, pattern, err)
	}

	rc := &regexChild{source: pattern, pattern: compiled, groupNames: groupNames, node: newNode()}
	cur.regexes = append(cur.regexes, rc)

	return rc.node, nil
}

// assemblePattern translates a token-per-segment list into a single regex:
// literals are regex-escaped, a pure variable becomes a non-greedy
// single-segment capture, a constrained variable becomes a capture over
// its constraint, and segments are joined by '/'. A trailing '/' is
// appended to match the reassembled-URI convention used by Lookup.
func assemblePattern(segments []uritemplate.Segment) (string, map[string]string, error) {
	var b strings.Builder
	groupNames := make(map[string]string)
	counter := 0

	for i, seg := range segments {
		if i > 0 {
			b.WriteByte('/')
		}
		for _, tok := range seg.Tokens {
			switch tok.Kind {
			case uritemplate.Literal:
				b.WriteString(regexp.QuoteMeta(tok.Text))
			case uritemplate.PureVar:
				name := fmt.Sprintf("g_%d", counter)
				counter++
				groupNames[name] = tok.Text
				b.WriteString("(?P<" + name + ">[^/]+?)")
			case uritemplate.RegexVar:
				name := fmt.Sprintf("g_%d", counter)
				counter++
				groupNames[name] = tok.Text
				b.WriteString("(?P<" + name + ">" + tok.Regex + ")")
			}
		}
	}
	b.WriteByte('/')

	return b.String(), groupNames, nil
}
