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

import "fmt"

// Constraint is a conjunction of linear equalities.  The tree shape built by
// the factories is immaterial to the linearizer, which only cares about the
// flattened set of Equation leaves (spec.md §3, §4.3).
type Constraint interface {
	isConstraint()
	String() string
}

// And requires both sub-constraints to hold.
type And struct {
	Left, Right Constraint
}

func (And) isConstraint() {}

func (a And) String() string {
	return fmt.Sprintf("(%s /\\ %s)", a.Left, a.Right)
}

// Atom wraps a single equation as a constraint leaf.
type Atom struct {
	Equation *Equation
}

func (Atom) isConstraint() {}

func (a Atom) String() string {
	return a.Equation.String()
}

// and left-folds a non-empty list of equations into a single conjunction,
// matching the fold used throughout constraints.rs.
func and(eqs []*Equation) Constraint {
	if len(eqs) == 0 {
		panic("and: no equations")
	}

	c := Constraint(Atom{eqs[0]})
	for _, eq := range eqs[1:] {
		c = And{c, Atom{eq}}
	}

	return c
}

// Equations flattens a constraint tree into its Equation leaves, in
// left-to-right tree order. Used by the linearizer (spec.md §4.3).
func Equations(c Constraint) []*Equation {
	var out []*Equation

	var walk func(Constraint)
	walk = func(c Constraint) {
		switch v := c.(type) {
		case And:
			walk(v.Left)
			walk(v.Right)
		case Atom:
			out = append(out, v.Equation)
		}
	}

	walk(c)

	return out
}
