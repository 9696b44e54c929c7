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
package fixture

import "github.com/obicons/go-scalpel/pkg/clangir"

// Node is a builder-friendly in-memory implementation of clangir.Node.
type Node struct {
	kind        clangir.Kind
	name        string
	hasName     bool
	mangled     string
	isDef       bool
	hasInit     bool
	comment     string
	hasComment  bool
	operator    string
	hasOperator bool
	loc         clangir.Location
	span        Span
	file        *File
	eval        clangir.EvalResult
	children    []clangir.Node
}

// New constructs a leaf fixture node.
func New(kind clangir.Kind, file *File, loc clangir.Location, span Span) *Node {
	return &Node{kind: kind, loc: loc, span: span, file: file}
}

// WithName sets the node's spelling and (by default) mangled name.
func (n *Node) WithName(name string) *Node {
	n.name, n.hasName = name, true
	if n.mangled == "" {
		n.mangled = name
	}

	return n
}

// WithMangledName overrides the mangled name used for scope qualification.
func (n *Node) WithMangledName(name string) *Node {
	n.mangled = name
	return n
}

// WithComment attaches a parsed doc comment.
func (n *Node) WithComment(text string) *Node {
	n.comment, n.hasComment = text, true
	return n
}

// WithOperator attaches an operator spelling (for BinaryOperator nodes).
func (n *Node) WithOperator(op string) *Node {
	n.operator, n.hasOperator = op, true
	return n
}

// AsDefinition marks this node as a definition, optionally carrying an
// initializer.
func (n *Node) AsDefinition(hasInit bool) *Node {
	n.isDef, n.hasInit = true, hasInit
	return n
}

// WithFloat marks this node as an evaluable floating-point literal.
func (n *Node) WithFloat(v float64) *Node {
	n.eval = clangir.EvalResult{Value: v, Ok: true}
	return n
}

// WithChildren appends children in source order.
func (n *Node) WithChildren(children ...clangir.Node) *Node {
	n.children = append(n.children, children...)
	return n
}

func (n *Node) Kind() clangir.Kind             { return n.kind }
func (n *Node) Name() (string, bool)           { return n.name, n.hasName }
func (n *Node) MangledName() (string, bool)    { return n.mangled, n.mangled != "" }
func (n *Node) IsDefinition() bool             { return n.isDef }
func (n *Node) HasInitializer() bool           { return n.hasInit }
func (n *Node) Comment() (string, bool)        { return n.comment, n.hasComment }
func (n *Node) Operator() (string, bool)       { return n.operator, n.hasOperator }
func (n *Node) Location() clangir.Location     { return n.loc }
func (n *Node) Evaluate() clangir.EvalResult   { return n.eval }
func (n *Node) Children() []clangir.Node       { return n.children }

// SourceText slices the backing file at this node's span.
func (n *Node) SourceText() string {
	if n.file == nil {
		return ""
	}

	return n.file.Slice(n.span)
}
