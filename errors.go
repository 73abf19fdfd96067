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

import "errors"

// Static errors for registration and resolution failures. These should be
// wrapped with fmt.Errorf and %w when context (the offending template,
// verb, or header) is needed.
var (
	// ErrTemplateParse is returned when a registered path template fails
	// to parse (see uritemplate.ParseError for the byte offset).
	ErrTemplateParse = errors.New("router: template parse error")

	// ErrDuplicateVariableName is returned when two templates registered
	// at the same trie path bind a full-segment variable to different
	// names.
	ErrDuplicateVariableName = errors.New("router: conflicting variable names at same path")

	// ErrDuplicateEndpointBinding is returned when two endpoints are
	// registered for the same (path, verb) pair.
	ErrDuplicateEndpointBinding = errors.New("router: duplicate endpoint binding for method at path")

	// ErrDuplicateRegexPattern is returned when two templates assemble to
	// the same regex pattern at the same trie path.
	ErrDuplicateRegexPattern = errors.New("router: duplicate regex pattern at same path")

	// ErrMediaTypeParse is returned when a request's Content-Type or
	// Accept header fails to parse.
	ErrMediaTypeParse = errors.New("router: media type parse error")

	// ErrNoMatch is returned when no registered endpoint matches a
	// request's verb and URI, or when a path and verb match but no
	// registered endpoint's consumes group is compatible with the
	// request's Content-Type (spec.md §7 NoMatch). An Accept header that
	// no endpoint's produces group is compatible with does not cause it.
	ErrNoMatch = errors.New("router: no matching endpoint")

	// ErrAlreadyFrozen is returned by Register when called after Freeze.
	ErrAlreadyFrozen = errors.New("router: registry already frozen")

	// ErrEmptySegment is returned when a template contains an empty path
	// segment ("//" or a bare "@Path("")"-equivalent), which spec.md §9
	// leaves as a registration error rather than mapping to the root.
	ErrEmptySegment = errors.New("router: empty path segment is not allowed")

	// ErrNotFrozen is returned by Resolve when called before Freeze: the
	// registry publishes its dispatch trie atomically only at Freeze time
	// (spec.md §5), so there is nothing yet to look up.
	ErrNotFrozen = errors.New("router: registry not frozen yet")
)
