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

// Package constraint implements the dimensional-constraint algebra: Objects,
// Terms, Equations and Constraints, and the factory functions which build
// the common constraint shapes (spec.md §3, §4.2).
package constraint

import "github.com/obicons/go-scalpel/pkg/types"

// Object is a named carrier of an unknown 8-component (scalar-prefix, 7 SI
// exponents) vector.  Equality and hashing are defined over the label
// verbatim; the same label always refers to the same object.
type Object struct {
	Label string
}

// NewObject constructs an object for the given label.
func NewObject(label string) *Object {
	return &Object{Label: label}
}

// Selector picks one of the 8 components of an object's vector.
type Selector struct {
	scalarPrefix bool
	baseUnit     types.SIBaseUnit
}

// ScalarPrefix selects an object's decimal scalar-prefix component.
func ScalarPrefix() Selector {
	return Selector{scalarPrefix: true}
}

// BaseUnit selects an object's exponent for the given SI base dimension.
func BaseUnit(d types.SIBaseUnit) Selector {
	return Selector{baseUnit: d}
}

// IsScalarPrefix reports whether this selector picks the scalar-prefix
// component rather than a base-unit exponent.
func (s Selector) IsScalarPrefix() bool {
	return s.scalarPrefix
}

// Dimension returns the base dimension this selector picks.  Only meaningful
// when IsScalarPrefix is false.
func (s Selector) Dimension() types.SIBaseUnit {
	return s.baseUnit
}

// ColumnOffset returns this selector's offset within an object's 8-wide
// column block: 0 for the scalar prefix, 1+d for base unit d (spec.md §9
// "Selector indexing invariant" — the +1 is easy to forget).
func (s Selector) ColumnOffset() int {
	if s.scalarPrefix {
		return 0
	}

	return 1 + int(s.baseUnit)
}
