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

import "strings"

// Combined is the result of combining a client media range with a server
// (consumes/produces) media range. It is the unit that
// content negotiation ranks endpoints by.
type Combined struct {
	Type     string
	Subtype  string
	ClientQ  float64
	ServerQ  float64
	Distance int // count of wildcard specializations (0-2) used to reach Type/Subtype

	// Incompatible marks a pair where type or subtype are both concrete and
	// different; such a Combined carries no meaningful Type/Subtype/Distance
	// and always sorts last.
	Incompatible bool
}

// Combine pairs a client media range against a server one, resolving each
// of {type, subtype} independently:
//
//  1. one wildcard, one concrete  -> take the concrete value, Distance++
//  2. both concrete and equal     -> take the concrete value
//  3. both wildcard                -> keep the wildcard, Distance unchanged
//  4. both concrete and different -> INCOMPATIBLE
func Combine(client, server MediaType) Combined {
	typ, typeDist, ok := combineComponent(client.Type, server.Type)
	if !ok {
		return Combined{Incompatible: true}
	}
	subtype, subtypeDist, ok := combineComponent(client.Subtype, server.Subtype)
	if !ok {
		return Combined{Incompatible: true}
	}

	return Combined{
		Type:     typ,
		Subtype:  subtype,
		ClientQ:  client.Q,
		ServerQ:  server.Q,
		Distance: typeDist + subtypeDist,
	}
}

// combineComponent applies the per-component combination rule to a single
// type or subtype value pair.
func combineComponent(client, server string) (value string, distance int, ok bool) {
	clientWild := client == "*"
	serverWild := server == "*"

	switch {
	case clientWild && serverWild:
		return "*", 0, true
	case clientWild && !serverWild:
		return server, 1, true
	case !clientWild && serverWild:
		return client, 1, true
	case strings.EqualFold(client, server):
		return client, 0, true
	default:
		return "", 0, false
	}
}

// wildcardCount reports how many of {Type, Subtype} remain wildcards in
// the combined result, used as the comparator's first and coarsest
// criterion.
func (c Combined) wildcardCount() int {
	n := 0
	if c.Type == "*" {
		n++
	}
	if c.Subtype == "*" {
		n++
	}
	return n
}

// Less reports whether a ranks strictly better (i.e. should sort first,
// "ascending, higher is better") than b:
//
//  1. fewer wildcards in {type, subtype} wins
//  2. higher client_q wins
//  3. higher server_q wins
//  4. lower distance wins
//
// INCOMPATIBLE sorts strictly below (i.e. Less returns true for any
// compatible a against an incompatible b, and an incompatible a is never
// Less than anything).
func Less(a, b Combined) bool {
	if a.Incompatible != b.Incompatible {
		return !a.Incompatible
	}
	if a.Incompatible {
		return false
	}

	if wa, wb := a.wildcardCount(), b.wildcardCount(); wa != wb {
		return wa < wb
	}
	if a.ClientQ != b.ClientQ {
		return a.ClientQ > b.ClientQ
	}
	if a.ServerQ != b.ServerQ {
		return a.ServerQ > b.ServerQ
	}
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return false
}

// Compare returns -1, 0, or 1 following the same order as Less, for use
// with sort.Slice-style comparators and for asserting antisymmetry /
// transitivity in tests (P6).
func Compare(a, b Combined) int {
	if Less(a, b) {
		return -1
	}
	if Less(b, a) {
		return 1
	}
	return 0
}
