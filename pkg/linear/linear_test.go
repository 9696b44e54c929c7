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
package linear

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obicons/go-scalpel/pkg/constraint"
	"github.com/obicons/go-scalpel/pkg/types"
)

func TestLinearizeColumnAndRowCounts(t *testing.T) {
	meter, _ := types.ParseUnit("m")
	second, _ := types.ParseUnit("s")

	a := constraint.NewObject("a")
	b := constraint.NewObject("b")

	cs := []constraint.Constraint{
		constraint.TypeToConstraint(meter, a),
		constraint.TypeToConstraint(second, b),
	}

	sys := Linearize(cs)

	require.Len(t, sys.Objects, 2)
	assert.Equal(t, types.ColumnsPerObject*2, sys.Width())

	wantRows := len(constraint.Equations(cs[0])) + len(constraint.Equations(cs[1]))
	assert.Len(t, sys.A, wantRows)

	for _, row := range sys.A {
		assert.Len(t, row, sys.Width())
	}
}

func TestColumnOffsetInvariant(t *testing.T) {
	meter, _ := types.ParseUnit("m")
	a := constraint.NewObject("a")
	sys := Linearize([]constraint.Constraint{constraint.TypeToConstraint(meter, a)})

	base, ok := sys.ColumnOf("a")
	require.True(t, ok, "expected column for a")

	// Row 0 is the scalar-prefix equation and row 1 is Second (base unit 0);
	// row 2 is Meter (base unit 1), so its nonzero coefficient must land at
	// base+1+1 = base+2.
	row := sys.A[2]

	assert.Equal(t, float64(1), row[base+1+int(types.Meter)], "expected coefficient at base-unit column, got row %v", row)
}

func TestWriteCSVHeader(t *testing.T) {
	meter, _ := types.ParseUnit("m")
	a := constraint.NewObject("a")
	sys := Linearize([]constraint.Constraint{constraint.TypeToConstraint(meter, a)})

	var buf strings.Builder
	require.NoError(t, sys.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.True(t, strings.HasSuffix(lines[0], ",equals"), "header should end with equals, got %q", lines[0])
	assert.True(t, strings.HasPrefix(lines[0], "a.sm,"), "header should start with a.sm, got %q", lines[0])
}
