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

import "errors"

// Static errors for registration failures, in the style of the router
// package's sentinel errors: wrap with fmt.Errorf and %w when context
// (the offending path or verb) is needed.
var (
	// ErrConflictingVariableName is returned when a path already has a
	// full-segment variable child bound to a different name than the one
	// being registered at the same position.
	ErrConflictingVariableName = errors.New("dispatch: conflicting variable names at same path")

	// ErrDuplicateRegexPattern is returned when the assembled regex for a
	// RegexSegment child already exists among a node's regex children.
	ErrDuplicateRegexPattern = errors.New("dispatch: duplicate regex pattern at same path")

	// ErrDuplicateBinding is returned when a second endpoint is registered
	// for the same (node, verb) pair.
	ErrDuplicateBinding = errors.New("dispatch: duplicate endpoint binding for method at path")

	// ErrInvalidConstraint is returned when a variable's constraint regex
	// fails to compile.
	ErrInvalidConstraint = errors.New("dispatch: invalid constraint regex")
)
