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
package constraint

import (
	"fmt"
	"math"

	"github.com/obicons/go-scalpel/pkg/types"
)

// RepairContext records where and what a synthetic repair object should
// annotate in the reporter's output (spec.md §3).
type RepairContext struct {
	Location   string
	Expression string
}

func allSelectors() []Selector {
	sels := make([]Selector, 0, types.ColumnsPerObject)
	sels = append(sels, ScalarPrefix())

	for d := types.SIBaseUnit(0); d < types.NumBaseUnits; d++ {
		sels = append(sels, BaseUnit(d))
	}

	return sels
}

// TypeToConstraint pins obj's full 8-component vector to the declared type
// t (spec.md §4.2).
func TypeToConstraint(t types.Type, obj *Object) Constraint {
	eqs := []*Equation{
		{Term: Ref{obj, ScalarPrefix()}, Value: t.ScalarPrefix},
	}

	for d := types.SIBaseUnit(0); d < types.NumBaseUnits; d++ {
		eqs = append(eqs, &Equation{
			Term:  Ref{obj, BaseUnit(d)},
			Value: float64(t.SIUnits[d]),
		})
	}

	return and(eqs)
}

// AssertEqual requires a and b to agree on every one of the 8 components
// (spec.md §4.2).
func AssertEqual(a, b *Object) Constraint {
	var eqs []*Equation

	for _, s := range allSelectors() {
		eqs = append(eqs, &Equation{
			Term:  Sub{Ref{a, s}, Ref{b, s}},
			Value: 0,
		})
	}

	return and(eqs)
}

// AssertRepairable encodes lhs <- rhs where a synthetic repair object r may
// absorb a scalar-prefix mismatch, while the 7 SI exponents are pinned
// equal and hence remain unrepairable by any scalar correction (spec.md
// §4.2): lhs.sp - (rhs.sp + r.sp) = 0, and lhs.bu_d - rhs.bu_d = 0 for each
// dimension d.
func AssertRepairable(lhs, rhs, r *Object) Constraint {
	eqs := []*Equation{
		{
			Term: Sub{
				Ref{lhs, ScalarPrefix()},
				Add{Ref{rhs, ScalarPrefix()}, Ref{r, ScalarPrefix()}},
			},
			Value: 0,
		},
	}

	for d := types.SIBaseUnit(0); d < types.NumBaseUnits; d++ {
		eqs = append(eqs, &Equation{
			Term:  Sub{Ref{lhs, BaseUnit(d)}, Ref{rhs, BaseUnit(d)}},
			Value: 0,
		})
	}

	return and(eqs)
}

// AssertLiteral pins a floating-point literal object to scalar-prefix
// log10(v) with all seven SI exponents zero (spec.md §4.2).  v must be
// strictly positive; the caller is responsible for warning on and skipping
// non-positive or un-evaluable literals (spec.md §4.1, §7).
func AssertLiteral(v float64, obj *Object) Constraint {
	eqs := []*Equation{
		{Term: Ref{obj, ScalarPrefix()}, Value: math.Log10(v)},
	}

	for d := types.SIBaseUnit(0); d < types.NumBaseUnits; d++ {
		eqs = append(eqs, &Equation{Term: Ref{obj, BaseUnit(d)}, Value: 0})
	}

	return and(eqs)
}

// CreateMultiplicativeType encodes r = a*b: r.sp = a.sp+b.sp and r.bu_d =
// a.bu_d+b.bu_d for each dimension (spec.md §4.2).
func CreateMultiplicativeType(r, a, b *Object) Constraint {
	eqs := []*Equation{
		{
			Term:  Sub{Ref{r, ScalarPrefix()}, Add{Ref{a, ScalarPrefix()}, Ref{b, ScalarPrefix()}}},
			Value: 0,
		},
	}

	for d := types.SIBaseUnit(0); d < types.NumBaseUnits; d++ {
		eqs = append(eqs, &Equation{
			Term:  Sub{Ref{r, BaseUnit(d)}, Add{Ref{a, BaseUnit(d)}, Ref{b, BaseUnit(d)}}},
			Value: 0,
		})
	}

	return and(eqs)
}

// CreateDivisionType encodes r = a/b.  Per spec.md §9, the observed
// behavior of the source this was distilled from is preserved verbatim:
// the scalar prefix equation *sums* (r.sp - (a.sp+b.sp) = 0, matching
// multiplication's sign) while the SI exponents *difference*
// (r.bu_d + b.bu_d - a.bu_d = 0, i.e. r = a-b).  A strict reading of unit
// algebra would subtract scalar prefixes too; this is flagged as a likely
// source bug rather than "fixed" (see DESIGN.md and the division scenario
// in astwalk_test.go).
func CreateDivisionType(r, a, b *Object) Constraint {
	eqs := []*Equation{
		{
			Term:  Sub{Ref{r, ScalarPrefix()}, Add{Ref{a, ScalarPrefix()}, Ref{b, ScalarPrefix()}}},
			Value: 0,
		},
	}

	for d := types.SIBaseUnit(0); d < types.NumBaseUnits; d++ {
		eqs = append(eqs, &Equation{
			Term:  Add{Ref{r, BaseUnit(d)}, Sub{Ref{b, BaseUnit(d)}, Ref{a, BaseUnit(d)}}},
			Value: 0,
		})
	}

	return and(eqs)
}

// UnknownObjectLabel synthesizes the fallback label for a named entity
// whose spelling could not be recovered (spec.md §4.1).
func UnknownObjectLabel(loc string) string {
	return fmt.Sprintf("Unknown object in %s", loc)
}

// LiteralLabel synthesizes the label for a floating-point literal object
// (spec.md §3, §4.1).
func LiteralLabel(v float64, loc string) string {
	return fmt.Sprintf("literal %v at %s", v, loc)
}
