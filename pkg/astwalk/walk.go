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

// Package astwalk traverses a clangir.Node tree and emits the dimensional
// constraints, repair contexts, and frame assertions that the rest of the
// pipeline consumes (spec.md §2, §4.1). It is the shared visitor between
// the dimensional-constraint engine and the frame-constraint engine.
package astwalk

import (
	log "github.com/sirupsen/logrus"

	"github.com/obicons/go-scalpel/pkg/clangir"
	"github.com/obicons/go-scalpel/pkg/constraint"
	"github.com/obicons/go-scalpel/pkg/frame"
	"github.com/obicons/go-scalpel/pkg/repair"
	"github.com/obicons/go-scalpel/pkg/types"
)

// Result is everything one translation-unit walk produces: the flattened
// constraint stream, the repair variables awaiting the sparsest-repair
// search, and the frame engine populated with declarations and
// assignments (spec.md §2, step 1).
type Result struct {
	Constraints []constraint.Constraint
	RepairVars  []repair.Variable
	Frames      *frame.Engine
}

// Walk traverses root and returns the accumulated constraint/repair/frame
// streams. A single walkContext is the sole owner of every object and
// constraint it creates (spec.md §5).
func Walk(root clangir.Node) *Result {
	ctx := newWalkContext()
	visit(ctx, root)

	return &Result{
		Constraints: ctx.constraints,
		RepairVars:  ctx.repairVars,
		Frames:      ctx.frames,
	}
}

func visit(ctx *walkContext, n clangir.Node) {
	if text, ok := n.Comment(); ok {
		applyAnnotation(ctx, text)
	}

	switch {
	case n.Kind().IsScopeIntroducer():
		visitScope(ctx, n)
	case n.Kind() == clangir.Unexposed:
		visitChildren(ctx, n)
	case n.Kind() == clangir.VarDecl:
		visitVarDecl(ctx, n)
	case n.Kind() == clangir.DeclRefExpr:
		visitDeclRef(ctx, n)
	case n.Kind() == clangir.FloatingLiteral:
		visitFloatingLiteral(ctx, n)
	case n.Kind() == clangir.BinaryOperator:
		visitBinaryOperator(ctx, n)
	default:
		// Unknown node kinds are visited transparently: the walk never
		// aborts on an unfamiliar kind (spec.md §7).
		visitChildren(ctx, n)
	}
}

func visitChildren(ctx *walkContext, n clangir.Node) {
	for _, c := range n.Children() {
		visit(ctx, c)
	}
}

// visitScope pushes a mangled (or best-effort) name, recurses, and pops
// (spec.md §4.1, "Scope-introducing definition").
func visitScope(ctx *walkContext, n clangir.Node) {
	name, ok := n.MangledName()
	if !ok {
		name, ok = n.Name()
	}

	if !ok {
		name = constraint.UnknownObjectLabel(n.Location().String())
		log.Warnf("unknown-spelling scope at %s", n.Location())
	}

	ctx.push(name)
	visitChildren(ctx, n)
	ctx.pop()
}

// visitVarDecl handles a "definition with initializer" (spec.md §4.1):
// reset object_name, recurse into children to resolve the RHS, then emit
// assert_repairable and its repair context. A VarDecl without an
// initializer (no children to resolve) is walked transparently.
func visitVarDecl(ctx *walkContext, n clangir.Node) {
	if !n.IsDefinition() || !n.HasInitializer() {
		visitChildren(ctx, n)
		return
	}

	name, ok := n.Name()
	if !ok {
		name = constraint.UnknownObjectLabel(n.Location().String())
		log.Warnf("unknown-spelling declaration at %s", n.Location())
	}

	lhsLabel := ctx.qualify(name)

	ctx.objectName = ""

	children := n.Children()
	for _, c := range children {
		visit(ctx, c)
	}

	if ctx.objectName == "" {
		log.Warnf("no resolvable initializer for %q at %s", lhsLabel, n.Location())
		return
	}

	var expr string
	if len(children) > 0 {
		expr = children[len(children)-1].SourceText()
	}

	ctx.recordInitializer(lhsLabel, ctx.objectName, n.Location().String(), expr)
	ctx.objectName = lhsLabel
}

// visitDeclRef sets object_name to the qualified referent name and
// continues — it never breaks sibling traversal, so a surrounding binary
// operator still sees later operands (spec.md §4.1).
func visitDeclRef(ctx *walkContext, n clangir.Node) {
	name, ok := n.Name()
	if !ok {
		name = constraint.UnknownObjectLabel(n.Location().String())
		log.Warnf("unknown-spelling reference at %s", n.Location())
	}

	ctx.objectName = ctx.qualify(name)
}

// visitFloatingLiteral evaluates the literal, pins its scalar prefix to
// log10(v) with zero SI exponents, and sets object_name to its synthetic
// label (spec.md §4.1).
func visitFloatingLiteral(ctx *walkContext, n clangir.Node) {
	res := n.Evaluate()
	if !res.Ok || res.Value <= 0 {
		log.Warnf("un-evaluable or non-positive literal at %s", n.Location())
		ctx.objectName = ""

		return
	}

	label := constraint.LiteralLabel(res.Value, n.Location().String())
	obj := ctx.object(label)

	ctx.emit(constraint.AssertLiteral(res.Value, obj))
	ctx.objectName = label
}

// visitBinaryOperator recurses into the LHS (first child) and RHS (last
// child) subtrees, then dispatches on the operator spelling (spec.md
// §4.1).
func visitBinaryOperator(ctx *walkContext, n clangir.Node) {
	children := n.Children()
	if len(children) < 2 {
		log.Warnf("binary operator with too few operands at %s", n.Location())
		return
	}

	lhsNode, rhsNode := children[0], children[len(children)-1]

	visit(ctx, lhsNode)

	lhsName := ctx.objectName

	visit(ctx, rhsNode)

	rhsName := ctx.objectName

	if lhsName == "" || rhsName == "" {
		log.Warnf("unresolved operand for binary operator at %s", n.Location())
		return
	}

	op, _ := n.Operator()

	switch op {
	case "=", "+", "-", "<", "<=", ">", ">=":
		ctx.recordAssignmentExpr(lhsName, rhsName, n.Location().String(), n.SourceText())
		ctx.objectName = lhsName
	case "*":
		k := ctx.fresh()
		r := ctx.object(k)
		ctx.emit(constraint.CreateMultiplicativeType(r, ctx.object(lhsName), ctx.object(rhsName)))
		ctx.objectName = k
	case "/":
		k := ctx.fresh()
		r := ctx.object(k)
		ctx.emit(constraint.CreateDivisionType(r, ctx.object(lhsName), ctx.object(rhsName)))
		ctx.objectName = k
	default:
		log.Warnf("unknown operator %q at %s", op, n.Location())
	}
}

// applyAnnotation tries both structured-comment grammars in turn (spec.md
// §4.1): a type annotation pins the named object's declared vector, a
// frame annotation declares a fixed frame for it.
func applyAnnotation(ctx *walkContext, text string) {
	if name, t, ok := types.ParseTypeComment(text); ok {
		obj := ctx.object(ctx.qualify(name))
		ctx.emit(constraint.TypeToConstraint(t, obj))

		return
	}

	if name, f, ok := frame.ParseFrameComment(text); ok {
		ctx.frames.Declare(ctx.qualify(name), f)
	}
}
