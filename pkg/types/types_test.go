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
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnitVocabulary(t *testing.T) {
	tests := []struct {
		text string
		want Type
	}{
		{"m", Type{0, [NumBaseUnits]int{0, 1, 0, 0, 0, 0, 0}}},
		{"cm", Type{-2, [NumBaseUnits]int{0, 1, 0, 0, 0, 0, 0}}},
		{"cm^2", Type{-4, [NumBaseUnits]int{0, 2, 0, 0, 0, 0, 0}}},
		{"s", Type{0, [NumBaseUnits]int{1, 0, 0, 0, 0, 0, 0}}},
	}

	for _, tc := range tests {
		got, ok := ParseUnit(tc.text)
		require.True(t, ok, "ParseUnit(%q): expected match", tc.text)
		assert.True(t, got.Equals(tc.want), "ParseUnit(%q) = %+v, want %+v", tc.text, got, tc.want)
	}

	_, ok := ParseUnit("furlong")
	assert.False(t, ok, "ParseUnit(furlong) should not match the closed vocabulary")
}

func TestParseTypeComment(t *testing.T) {
	name, typ, ok := ParseTypeComment(" d : m ")
	require.True(t, ok, "expected match")
	assert.Equal(t, "d", name)
	assert.True(t, typ.Equals(Type{0, [NumBaseUnits]int{0, 1, 0, 0, 0, 0, 0}}), "unexpected type: %+v", typ)

	_, _, ok = ParseTypeComment("this is just a comment")
	assert.False(t, ok, "expected no match for a non-annotation comment")
}
