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

// Package fixture builds in-memory clangir.Node trees for tests, standing
// in for the out-of-scope libclang front end (spec.md §1, §6).  Span/File
// are trimmed down from go-corset's pkg/util/source/source_file.go, which
// the teacher uses for exactly this purpose: slicing out the original text
// spanned by a parsed node.
package fixture

// Span is a half-open [Start,End) rune range into a File's contents.
type Span struct {
	Start, End int
}

// Length returns the number of runes in this span.
func (s Span) Length() int {
	return s.End - s.Start
}

// File is an in-memory source buffer a fixture node's Span indexes into.
type File struct {
	name     string
	contents []rune
}

// NewFile wraps a source string for span slicing.
func NewFile(name, contents string) *File {
	return &File{name: name, contents: []rune(contents)}
}

// Slice returns the text spanned by s.
func (f *File) Slice(s Span) string {
	if s.Start < 0 || s.End > len(f.contents) || s.Start > s.End {
		return ""
	}

	return string(f.contents[s.Start:s.End])
}
