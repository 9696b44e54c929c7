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

// Package compiledb loads a compile_commands.json compilation database and
// resolves each entry's effective argument list, including the host
// compiler's system include search path (spec.md §6).
package compiledb

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/encoding/json"
)

// Entry is one compilation-database record (spec.md §6, "Compilation-
// database contract"): a working directory, a filename, and an argument
// list.
type Entry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments,omitempty"`
	Command   string   `json:"command,omitempty"`
}

// Load reads compile_commands.json from dir.
func Load(dir string) ([]Entry, error) {
	path := filepath.Join(dir, "compile_commands.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading compilation database %s: %w", path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing compilation database %s: %w", path, err)
	}

	return entries, nil
}

// ResolvedArguments returns e's effective argument list for the front end:
// the bare filename is filtered out of the recorded arguments (the AST
// provider is given the file separately), and the host compiler's system
// include flags are appended (spec.md §6).
func ResolvedArguments(compiler string, e Entry) ([]string, error) {
	args := make([]string, 0, len(e.Arguments))

	for _, a := range e.Arguments {
		if a == e.File {
			continue
		}

		args = append(args, a)
	}

	includes, err := SystemIncludePaths(compiler)
	if err != nil {
		return nil, err
	}

	for _, inc := range includes {
		args = append(args, "-isystem", inc)
	}

	return args, nil
}
