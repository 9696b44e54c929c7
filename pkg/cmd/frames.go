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
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obicons/go-scalpel/pkg/astwalk"
	"github.com/obicons/go-scalpel/pkg/compiledb"
	"github.com/obicons/go-scalpel/pkg/report"
)

// framesCmd reports only the reference-frame repairs for each translation
// unit, skipping the dimensional-constraint solve entirely.
var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Report reference-frame repairs for every translation unit in a compilation database.",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runFrames(cmd))
	},
}

func runFrames(cmd *cobra.Command) int {
	dir := GetString(cmd, "compile-commands-directory")
	compiler := GetString(cmd, "compiler")

	entries, err := compiledb.Load(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if NewProvider == nil {
		fmt.Fprintln(os.Stderr, "no AST provider configured: scalpel ships the clangir.Provider contract only, a front end must be linked in")
		return 1
	}

	provider, err := NewProvider()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for _, e := range entries {
		args, err := compiledb.ResolvedArguments(compiler, e)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		root, release, err := provider.Parse(context.Background(), e.Directory, e.File, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		result := astwalk.Walk(root)
		release()

		fmt.Printf("%s:\n", e.File)

		// spec.md §7: frame infeasibility surfaces as the absence of a
		// frame-repair report, not as a fatal error; UNSAT is not a
		// nonzero exit any more than "Program not repairable." is.
		frameReport, ok := result.Frames.Solve()
		if !ok {
			fmt.Fprintln(os.Stderr, "frame assignments are unsatisfiable")
			continue
		}

		if err := report.WriteFrameReport(os.Stdout, report.FromFrameReport(frameReport), frameReport.Total); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	return 0
}
