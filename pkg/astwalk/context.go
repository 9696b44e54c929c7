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
	"fmt"
	"strings"

	"github.com/obicons/go-scalpel/pkg/constraint"
	"github.com/obicons/go-scalpel/pkg/frame"
	"github.com/obicons/go-scalpel/pkg/repair"
)

// walkContext is the single mutable traversal state the walker threads
// through nested visits by exclusive borrow (spec.md §9): the enclosing
// scope stack, the object_name side channel, the fresh-name counter, and
// the accumulated output streams.
type walkContext struct {
	scopes     []string
	objectName string
	counter    int
	objects    map[string]*constraint.Object

	constraints []constraint.Constraint
	repairVars  []repair.Variable
	frames      *frame.Engine
}

func newWalkContext() *walkContext {
	return &walkContext{
		objects: map[string]*constraint.Object{},
		frames:  frame.NewEngine(),
	}
}

// push enters a named scope.
func (c *walkContext) push(name string) {
	c.scopes = append(c.scopes, name)
}

// pop exits the innermost scope.
func (c *walkContext) pop() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// qualify prefixes name with the current scope stack, "::"-joined
// (spec.md §4.1, "Name qualification").
func (c *walkContext) qualify(name string) string {
	if len(c.scopes) == 0 {
		return name
	}

	return strings.Join(c.scopes, "::") + "::" + name
}

// object returns the single Object for label, creating it on first
// reference (spec.md §3: "the label→column map is a bijection").
func (c *walkContext) object(label string) *constraint.Object {
	if o, ok := c.objects[label]; ok {
		return o
	}

	o := constraint.NewObject(label)
	c.objects[label] = o

	return o
}

// fresh synthesizes the next T<i> repair/product name (spec.md §9).
func (c *walkContext) fresh() string {
	label := fmt.Sprintf("T%d", c.counter)
	c.counter++

	return label
}

func (c *walkContext) emit(con constraint.Constraint) {
	c.constraints = append(c.constraints, con)
}

// newRepair allocates a fresh repair object and registers its context.
func (c *walkContext) newRepair(location, expr string) *constraint.Object {
	r := c.object(c.fresh())

	c.repairVars = append(c.repairVars, repair.Variable{
		Object: r,
		Context: constraint.RepairContext{
			Location:   location,
			Expression: expr,
		},
	})

	return r
}

// recordInitializer emits the repairable dimensional equality and the
// coupled frame assertion for a "definition with initializer" site
// (spec.md §4.1). The AssertRepairable call binds the resolved
// initializer expression as the factory's "lhs" argument and the declared
// variable as "rhs": matching this order (rather than declared-then-
// initializer) is what reproduces the sign of the worked centimeter↔meter
// example in spec.md §8 scenario 1. The frame assertion keeps the
// intuitive target<-source order regardless.
func (c *walkContext) recordInitializer(declLabel, initLabel, location, expr string) {
	r := c.newRepair(location, expr)
	c.emit(constraint.AssertRepairable(c.object(initLabel), c.object(declLabel), r))
	c.frames.Assign(declLabel, initLabel, location)
}

// recordAssignmentExpr emits the repairable dimensional equality for a
// plain "lhs = rhs" assignment expression, in program operand order
// (spec.md §4.1's BinaryOperator "=" row), plus the coupled frame
// assertion.
func (c *walkContext) recordAssignmentExpr(lhsLabel, rhsLabel, location, expr string) {
	r := c.newRepair(location, expr)
	c.emit(constraint.AssertRepairable(c.object(lhsLabel), c.object(rhsLabel), r))
	c.frames.Assign(lhsLabel, rhsLabel, location)
}
