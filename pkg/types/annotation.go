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

import "regexp"

// typeAnnotation matches the "var : unit" grammar of spec.md §4.1 /§6.
var typeAnnotation = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s?:\s?([A-Za-z0-9^_]+)`)

// ParseTypeComment tries to match a structured doc comment against the type
// annotation grammar and, on success, resolve the unit literal against the
// closed vocabulary.  It returns false if the comment does not match the
// grammar, or matches a spelling outside the closed vocabulary.
func ParseTypeComment(text string) (name string, t Type, ok bool) {
	m := typeAnnotation.FindStringSubmatch(text)
	if m == nil {
		return "", Type{}, false
	}

	t, ok = ParseUnit(m[2])
	if !ok {
		return "", Type{}, false
	}

	return m[1], t, true
}
