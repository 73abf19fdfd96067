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

// BestMatch is the resolved outcome of walking a Match tree: a single
// winning binding plus its accumulated path-parameter bindings.
type BestMatch struct {
	Binding any
	Values  map[string]string
}

// Best walks m depth-first, taking the first child at every level — the
// same priority lookupNode already encoded by appending word, then
// variable, then regex children in that order — and merges the values
// bound at each level of the chosen path into the result. This is a
// simplification relative to full JAX-RS specificity (whole-template
// literal/variable counting, §9), but matches the source's local,
// per-node tie-break.
func Best(m *Match) *BestMatch {
	if m == nil {
		return nil
	}
	if m.isLeaf() {
		return &BestMatch{Binding: m.Binding, Values: m.Bound}
	}
	if len(m.Children) == 0 {
		return nil
	}
	best := Best(m.Children[0])
	if best == nil || len(m.Bound) == 0 {
		return best
	}
	values := make(map[string]string, len(m.Bound)+len(best.Values))
	for k, v := range m.Bound {
		values[k] = v
	}
	for k, v := range best.Values {
		values[k] = v
	}
	return &BestMatch{Binding: best.Binding, Values: values}
}
