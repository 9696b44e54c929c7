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

// Term is a linear expression over object components: a tree of Add/Sub
// nodes over leaf references into an object's vector (spec.md §3).
type Term interface {
	isTerm()
	String() string
}

// Ref is a leaf term referencing one component of one object.
type Ref struct {
	Object   *Object
	Selector Selector
}

func (Ref) isTerm() {}

func (r Ref) String() string {
	if r.Selector.IsScalarPrefix() {
		return r.Object.Label + ".sp"
	}

	return fmt.Sprintf("%s.%s", r.Object.Label, r.Selector.Dimension())
}

// Add is the sum of two terms.
type Add struct {
	Left, Right Term
}

func (Add) isTerm() {}

func (a Add) String() string {
	return fmt.Sprintf("(%s + %s)", a.Left, a.Right)
}

// Sub is the difference of two terms.
type Sub struct {
	Left, Right Term
}

func (Sub) isTerm() {}

func (s Sub) String() string {
	return fmt.Sprintf("(%s - %s)", s.Left, s.Right)
}

// Equation asserts that a term evaluates to a fixed value.
type Equation struct {
	Term  Term
	Value float64
}

func (e *Equation) String() string {
	return fmt.Sprintf("%s = %v", e.Term, e.Value)
}
