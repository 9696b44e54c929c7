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
package clangir

import "context"

// Provider parses one translation unit into a Node tree. Implementing it
// means standing up the libclang-like front end spec.md §1 places outside
// this module's scope; ./fixture gives an in-memory implementation for
// tests, but no production implementation ships here.
type Provider interface {
	// Parse parses filename (compiled from workdir with args, per the
	// resolved compile_commands.json entry) and returns its translation
	// unit's root node. release must be called once the walker has
	// finished emitting constraints for the unit (spec.md §6, "Resource
	// discipline"); it frees any resources release's Provider tied to
	// the translation unit's lifetime.
	Parse(ctx context.Context, workdir, filename string, args []string) (root Node, release func(), err error)
}
