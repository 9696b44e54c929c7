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
package astwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obicons/go-scalpel/pkg/clangir"
	"github.com/obicons/go-scalpel/pkg/clangir/fixture"
	"github.com/obicons/go-scalpel/pkg/linear"
	"github.com/obicons/go-scalpel/pkg/repair"
)

func loc(file string, line, col int) clangir.Location {
	return clangir.Location{File: file, Line: line, Col: col}
}

// declRef builds a leaf DeclRefExpr reading name.
func declRef(f *fixture.File, name string, span fixture.Span, l clangir.Location) *fixture.Node {
	return fixture.New(clangir.DeclRefExpr, f, l, span).WithName(name)
}

// floatLit builds a leaf FloatingLiteral evaluating to v.
func floatLit(f *fixture.File, v float64, span fixture.Span, l clangir.Location) *fixture.Node {
	return fixture.New(clangir.FloatingLiteral, f, l, span).WithFloat(v)
}

// plainDecl builds a VarDecl carrying only an annotation comment and no
// initializer, e.g. a function parameter or an earlier declaration whose
// definition site is outside the walked fragment.
func plainDecl(f *fixture.File, name, comment string, l clangir.Location) *fixture.Node {
	n := fixture.New(clangir.VarDecl, f, l, fixture.Span{}).WithName(name)
	if comment != "" {
		n.WithComment(comment)
	}

	return n
}

// varDecl builds a VarDecl "definition with initializer" (spec.md §4.1).
func varDecl(f *fixture.File, name, comment string, l clangir.Location, init clangir.Node) *fixture.Node {
	n := fixture.New(clangir.VarDecl, f, l, fixture.Span{}).WithName(name).AsDefinition(true)
	if comment != "" {
		n.WithComment(comment)
	}

	n.WithChildren(init)

	return n
}

// tu wraps a list of top-level declarations in a transparent root node, the
// way a TranslationUnit cursor's children would appear.
func tu(children ...clangir.Node) *fixture.Node {
	root := fixture.New(clangir.Unexposed, nil, clangir.Location{}, fixture.Span{})
	root.WithChildren(children...)

	return root
}

// TestCentimeterToMeterMismatch is scenario 1 of spec.md §8.
func TestCentimeterToMeterMismatch(t *testing.T) {
	src := fixture.NewFile("f.cpp", "cm_value")

	cmValue := plainDecl(src, "cm_value", "cm_value : cm", loc("f.cpp", 1, 1))

	d := varDecl(src, "d", "d : m",
		loc("f.cpp", 2, 1),
		declRef(src, "cm_value", fixture.Span{0, 8}, loc("f.cpp", 2, 13)))

	result := Walk(tu(cmValue, d))

	require.Len(t, result.RepairVars, 1)

	sys := linear.Linearize(result.Constraints)

	sol, ok := repair.Solve(sys, result.RepairVars, repair.DefaultConfig())
	require.True(t, ok, "expected a feasible repair")

	base, ok := sys.ColumnOf(result.RepairVars[0].Object.Label)
	require.True(t, ok, "repair object has no column")

	// The solved coefficient is -2.0: the reporter emits pow(10.0, -x),
	// which must come out to pow(10.0, 2.000) per spec.md §8 scenario 1.
	assert.InDelta(t, -2.0, sol.X[base], 1e-6, "expected repair coefficient -2.0")
	assert.Equal(t, "cm_value", result.RepairVars[0].Context.Expression)
}

// TestDimensionMismatchUnrepairable is scenario 2 of spec.md §8.
func TestDimensionMismatchUnrepairable(t *testing.T) {
	src := fixture.NewFile("f.cpp", "length")

	length := plainDecl(src, "length", "length : m", loc("f.cpp", 1, 1))

	tVar := varDecl(src, "t", "t : s",
		loc("f.cpp", 2, 1),
		declRef(src, "length", fixture.Span{0, 6}, loc("f.cpp", 2, 13)))

	result := Walk(tu(length, tVar))

	sys := linear.Linearize(result.Constraints)

	_, ok := repair.Solve(sys, result.RepairVars, repair.DefaultConfig())
	assert.False(t, ok, "expected the dimension mismatch to be unrepairable")
}

// TestMultiplicationComposesUnits is scenario 3 of spec.md §8.
func TestMultiplicationComposesUnits(t *testing.T) {
	src := fixture.NewFile("f.cpp", "a * b")

	a := plainDecl(src, "a", "a : m", loc("f.cpp", 1, 1))
	b := plainDecl(src, "b", "b : m", loc("f.cpp", 2, 1))

	mul := fixture.New(clangir.BinaryOperator, src, loc("f.cpp", 3, 13), fixture.Span{0, 5}).
		WithOperator("*").
		WithChildren(
			declRef(src, "a", fixture.Span{0, 1}, loc("f.cpp", 3, 13)),
			declRef(src, "b", fixture.Span{4, 5}, loc("f.cpp", 3, 17)),
		)

	c := varDecl(src, "c", "", loc("f.cpp", 3, 1), mul)

	result := Walk(tu(a, b, c))

	require.Len(t, result.RepairVars, 1, "expected exactly one repair variable (c's initializer)")

	sys := linear.Linearize(result.Constraints)

	sol, ok := repair.Solve(sys, result.RepairVars, repair.DefaultConfig())
	require.True(t, ok, "expected a feasible, zero-repair solution")

	base, _ := sys.ColumnOf(result.RepairVars[0].Object.Label)
	assert.InDelta(t, 0.0, sol.X[base], 1e-6, "expected zero repair for a well-typed product")
}

// TestDivisionComposesUnits exercises the "/" operator end-to-end: a/b for
// a, b : m must linearize and solve with zero repair, the same shape as
// TestMultiplicationComposesUnits. Since c is unannotated and both scalar
// prefixes are 0, this does not pin down CreateDivisionType's sign
// convention (spec.md §9) for either component.
func TestDivisionComposesUnits(t *testing.T) {
	src := fixture.NewFile("f.cpp", "a / b")

	a := plainDecl(src, "a", "a : m", loc("f.cpp", 1, 1))
	b := plainDecl(src, "b", "b : m", loc("f.cpp", 2, 1))

	div := fixture.New(clangir.BinaryOperator, src, loc("f.cpp", 3, 13), fixture.Span{0, 5}).
		WithOperator("/").
		WithChildren(
			declRef(src, "a", fixture.Span{0, 1}, loc("f.cpp", 3, 13)),
			declRef(src, "b", fixture.Span{4, 5}, loc("f.cpp", 3, 17)),
		)

	c := varDecl(src, "c", "", loc("f.cpp", 3, 1), div)

	result := Walk(tu(a, b, c))

	require.Len(t, result.RepairVars, 1, "expected exactly one repair variable (c's initializer)")

	sys := linear.Linearize(result.Constraints)

	sol, ok := repair.Solve(sys, result.RepairVars, repair.DefaultConfig())
	require.True(t, ok, "expected a feasible, zero-repair solution")

	base, _ := sys.ColumnOf(result.RepairVars[0].Object.Label)
	assert.InDelta(t, 0.0, sol.X[base], 1e-6, "expected zero repair for a well-typed quotient")
}

// TestLiteralNormalization is scenario 4 of spec.md §8.
func TestLiteralNormalization(t *testing.T) {
	src := fixture.NewFile("f.cpp", "100.0")

	lit := floatLit(src, 100.0, fixture.Span{0, 5}, loc("f.cpp", 1, 13))
	d := varDecl(src, "d", "d : m", loc("f.cpp", 1, 1), lit)

	result := Walk(tu(d))

	require.Len(t, result.RepairVars, 1)

	sys := linear.Linearize(result.Constraints)

	sol, ok := repair.Solve(sys, result.RepairVars, repair.DefaultConfig())
	require.True(t, ok, "expected a feasible repair")

	base, _ := sys.ColumnOf(result.RepairVars[0].Object.Label)
	assert.InDelta(t, 2.0, sol.X[base], 1e-6, "expected repair coefficient log10(100)=2.0")
	assert.Equal(t, "100.0", result.RepairVars[0].Context.Expression)
}

// TestFrameNoOp is scenario 5 of spec.md §8.
func TestFrameNoOp(t *testing.T) {
	src := fixture.NewFile("f.cpp", "a = b")

	a := plainDecl(src, "a", "frame(a) = (global, epoch)", loc("f.cpp", 1, 1))
	b := plainDecl(src, "b", "frame(b) = (global, epoch)", loc("f.cpp", 2, 1))

	assign := fixture.New(clangir.BinaryOperator, src, loc("f.cpp", 3, 1), fixture.Span{0, 5}).
		WithOperator("=").
		WithChildren(
			declRef(src, "a", fixture.Span{0, 1}, loc("f.cpp", 3, 1)),
			declRef(src, "b", fixture.Span{4, 5}, loc("f.cpp", 3, 5)),
		)

	result := Walk(tu(a, b, assign))

	report, ok := result.Frames.Solve()
	require.True(t, ok, "expected a feasible frame assignment")
	assert.Zero(t, report.Total, "expected zero frame repair")
}

// TestFrameLocalToGlobal is scenario 6 of spec.md §8.
func TestFrameLocalToGlobal(t *testing.T) {
	src := fixture.NewFile("f.cpp", "a = b")

	a := plainDecl(src, "a", "frame(a) = (global, _)", loc("f.cpp", 1, 1))
	b := plainDecl(src, "b", "frame(b) = (local, _)", loc("f.cpp", 2, 1))

	assign := fixture.New(clangir.BinaryOperator, src, loc("f.cpp", 3, 1), fixture.Span{0, 5}).
		WithOperator("=").
		WithChildren(
			declRef(src, "a", fixture.Span{0, 1}, loc("f.cpp", 3, 1)),
			declRef(src, "b", fixture.Span{4, 5}, loc("f.cpp", 3, 5)),
		)

	result := Walk(tu(a, b, assign))

	report, ok := result.Frames.Solve()
	require.True(t, ok, "expected a feasible frame assignment")
	assert.Equal(t, 1, report.Total)
}

// TestScopeQualification exercises the context stack: the same leaf name
// declared in two different functions must produce two distinct objects.
// Each initializer also contributes a literal object and a repair object,
// so the system holds f::x, g::x, two literals and T0/T1; had the two x's
// collapsed into one object there would be five.
func TestScopeQualification(t *testing.T) {
	src := fixture.NewFile("f.cpp", "x")

	xInF := varDecl(src, "x", "x : m", loc("f.cpp", 2, 3),
		floatLit(src, 1, fixture.Span{}, loc("f.cpp", 2, 10)))
	fn := fixture.New(clangir.FunctionDecl, src, loc("f.cpp", 1, 1), fixture.Span{}).
		WithName("f").AsDefinition(true).WithChildren(xInF)

	xInG := varDecl(src, "x", "x : s", loc("f.cpp", 5, 3),
		floatLit(src, 1, fixture.Span{}, loc("f.cpp", 5, 10)))
	gn := fixture.New(clangir.FunctionDecl, src, loc("f.cpp", 4, 1), fixture.Span{}).
		WithName("g").AsDefinition(true).WithChildren(xInG)

	result := Walk(tu(fn, gn))

	sys := linear.Linearize(result.Constraints)
	require.Len(t, sys.Objects, 6, "expected f::x, g::x, 2 literals and 2 repair objects: %v", sys.Objects)
}
