// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package repair

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/obicons/go-scalpel/pkg/constraint"
	"github.com/obicons/go-scalpel/pkg/linear"
)

// Config holds the two oracle parameters named in spec.md §4.4.
type Config struct {
	// Tolerance (tau) bounds the accepted residual norm.
	Tolerance float64
	// Ridge (epsilon) is the pseudoinverse singular-value threshold.
	Ridge float64
}

// DefaultConfig returns the tolerances spec.md §4.4 recommends.
func DefaultConfig() Config {
	return Config{Tolerance: 0.01, Ridge: 0.001}
}

// Variable is a synthetic repair object together with the source context
// the reporter needs to surface a suggestion for it (spec.md §3).
type Variable struct {
	Object  *constraint.Object
	Context constraint.RepairContext
}

// Solution is the scalar-prefix/SI-exponent vector returned by the search,
// plus which repair variables the winning branch pinned to exactly zero.
type Solution struct {
	X      []float64
	Pinned *bitset.BitSet

	// pinnedVars is colVars (below), kept alongside Pinned so
	// PinnedVariables can translate bit positions back to the repair
	// variables they belong to.
	pinnedVars []Variable
}

// PinnedVariables returns the repair variables the winning branch of the
// sparsest-repair search pinned to exactly zero (spec.md §4.4) — the
// structural sparsity result, as distinct from a repair variable the
// least-squares oracle merely solved to a value near zero. Callers use
// this to report how sparse the accepted solution actually is, not just
// which repairs ended up nonzero (spec.md §8, "Sparsest repair").
func (s *Solution) PinnedVariables() []*constraint.Object {
	var out []*constraint.Object

	for i, v := range s.pinnedVars {
		if s.Pinned.Test(uint(i)) {
			out = append(out, v.Object)
		}
	}

	return out
}

// Solve runs the sparsest-repair branch-and-bound search of spec.md §4.4
// over sys, treating each entry of vars as a repair unknown that may be
// pinned to zero.  Repair variables with no matching column (spec.md §7,
// "missing column for a known repair object") are silently skipped, since
// their owning constraint was itself omitted upstream.
func Solve(sys *linear.System, vars []Variable, cfg Config) (*Solution, bool) {
	var cols []int
	var colVars []Variable

	for _, v := range vars {
		base, ok := sys.ColumnOf(v.Object.Label)
		if !ok {
			continue
		}

		cols = append(cols, base) // scalar-prefix column sits at offset 0 of the block
		colVars = append(colVars, v)
	}

	pinned := bitset.New(uint(len(cols)))

	x, ok := solveBranch(sys.A, sys.B, sys.Width(), cols, 0, pinned, cfg)
	if !ok {
		return nil, false
	}

	return &Solution{X: x, Pinned: pinned, pinnedVars: colVars}, true
}

// solveBranch implements the recursive branch-and-bound of spec.md §4.4:
// for the next pending repair, it first tries pinning its scalar-prefix
// column to zero (the sparser branch), and only falls back to leaving it
// free if that subtree is infeasible.  Traversal order is the order
// repairs were discovered by the walker (T0, T1, ...), which is
// deterministic per run as required.
func solveBranch(
	a [][]float64,
	b []float64,
	width int,
	cols []int,
	idx int,
	pinned *bitset.BitSet,
	cfg Config,
) ([]float64, bool) {
	if idx == len(cols) {
		x, residual := lstsq(a, b, cfg.Ridge)
		return x, residual <= cfg.Tolerance
	}

	row := make([]float64, width)
	row[cols[idx]] = 1

	a1 := make([][]float64, len(a), len(a)+1)
	copy(a1, a)
	a1 = append(a1, row)

	b1 := make([]float64, len(b), len(b)+1)
	copy(b1, b)
	b1 = append(b1, 0)

	pinned.Set(uint(idx))

	if x, ok := solveBranch(a1, b1, width, cols, idx+1, pinned, cfg); ok {
		return x, true
	}

	pinned.Clear(uint(idx))

	return solveBranch(a, b, width, cols, idx+1, pinned, cfg)
}
