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

// Package linear assigns each distinct constraint.Object a column block of
// width types.ColumnsPerObject and flattens a list of constraints into a
// dense matrix/vector pair (spec.md §4.3).
package linear

import (
	"fmt"
	"io"
	"strings"

	"github.com/obicons/go-scalpel/pkg/constraint"
	"github.com/obicons/go-scalpel/pkg/types"
)

// System is the linearized form of a constraint list: a dense matrix A, a
// right-hand-side vector B, and the bijection between objects and column
// blocks (spec.md §3, §4.3).
type System struct {
	// Objects lists every distinct object in column-block insertion order.
	Objects []string
	colOf   map[string]int
	// A has one row per Equation leaf and types.ColumnsPerObject*len(Objects)
	// columns.
	A [][]float64
	// B holds each row's right-hand side.
	B []float64
}

// Width returns the number of coefficient columns (ColumnsPerObject times
// the object count).
func (s *System) Width() int {
	return types.ColumnsPerObject * len(s.Objects)
}

// ColumnOf returns the base column index of obj's 8-wide block.
func (s *System) ColumnOf(label string) (int, bool) {
	idx, ok := s.colOf[label]
	if !ok {
		return 0, false
	}

	return idx * types.ColumnsPerObject, true
}

// Linearize flattens constraints into a System (spec.md §4.3 algorithm).
// Column order is insertion order across the input list: every object is
// discovered by walking the terms of each constraint in order, and assigned
// the next free index the first time it is referenced.
func Linearize(constraints []constraint.Constraint) *System {
	sys := &System{colOf: map[string]int{}}

	var eqs []*constraint.Equation
	for _, c := range constraints {
		eqs = append(eqs, constraint.Equations(c)...)
	}

	for _, eq := range eqs {
		sys.discover(eq.Term)
	}

	width := sys.Width()

	for _, eq := range eqs {
		row := make([]float64, width)
		sys.accumulate(eq.Term, row, 1)
		sys.A = append(sys.A, row)
		sys.B = append(sys.B, eq.Value)
	}

	return sys
}

func (s *System) discover(t constraint.Term) {
	switch v := t.(type) {
	case constraint.Ref:
		s.ensureColumn(v.Object.Label)
	case constraint.Add:
		s.discover(v.Left)
		s.discover(v.Right)
	case constraint.Sub:
		s.discover(v.Left)
		s.discover(v.Right)
	}
}

func (s *System) ensureColumn(label string) int {
	if idx, ok := s.colOf[label]; ok {
		return idx
	}

	idx := len(s.Objects)
	s.colOf[label] = idx
	s.Objects = append(s.Objects, label)

	return idx
}

func (s *System) accumulate(t constraint.Term, row []float64, sign float64) {
	switch v := t.(type) {
	case constraint.Ref:
		base := s.colOf[v.Object.Label] * types.ColumnsPerObject
		row[base+v.Selector.ColumnOffset()] += sign
	case constraint.Add:
		s.accumulate(v.Left, row, sign)
		s.accumulate(v.Right, row, sign)
	case constraint.Sub:
		s.accumulate(v.Left, row, sign)
		s.accumulate(v.Right, row, -sign)
	}
}

// WriteCSV dumps the linear system as CSV, for the "-s/--show-equations"
// diagnostic flag (spec.md §4.3, §6).  The header labels each column
// "<obj>.sm" for the scalar prefix and "<obj>.<UnitName>" for each base-unit
// column, ending with "equals".
func (s *System) WriteCSV(w io.Writer) error {
	var header []string

	for _, obj := range s.Objects {
		header = append(header, obj+".sm")

		for d := types.SIBaseUnit(0); d < types.NumBaseUnits; d++ {
			header = append(header, fmt.Sprintf("%s.%s", obj, d))
		}
	}

	header = append(header, "equals")

	if _, err := fmt.Fprintln(w, strings.Join(header, ",")); err != nil {
		return err
	}

	for i, row := range s.A {
		cells := make([]string, 0, len(row)+1)
		for _, v := range row {
			cells = append(cells, fmt.Sprintf("%g", v))
		}

		cells = append(cells, fmt.Sprintf("%g", s.B[i]))

		if _, err := fmt.Fprintln(w, strings.Join(cells, ",")); err != nil {
			return err
		}
	}

	return nil
}
