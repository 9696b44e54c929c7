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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/obicons/go-scalpel/pkg/astwalk"
	"github.com/obicons/go-scalpel/pkg/clangir"
	"github.com/obicons/go-scalpel/pkg/compiledb"
	"github.com/obicons/go-scalpel/pkg/linear"
	"github.com/obicons/go-scalpel/pkg/repair"
	"github.com/obicons/go-scalpel/pkg/report"
)

// NewProvider constructs the AST front end used by the check and frames
// commands. Producing an AST from source text is explicitly out of scope
// (spec.md §1): this module ships only the clangir.Provider contract and
// an in-memory fixture for tests, so NewProvider is nil until a caller
// wires in a real libclang-backed implementation.
var NewProvider func() (clangir.Provider, error)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Walk every translation unit in a compilation database and report dimensional and frame repairs.",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runCheck(cmd))
	},
}

// runCheck implements spec.md §6's pipeline and exit-code contract: 0 for
// success (including "not repairable"), 1 for any environment, parse, or
// I/O failure. Each translation unit is walked, linearized, and solved in
// turn, since the AST provider ties its handles to the translation unit's
// lifetime (spec.md §6, "Resource discipline") and releases them once this
// loop body moves on.
func runCheck(cmd *cobra.Command) int {
	start := timer()
	defer logElapsed("check", start)

	dir := GetString(cmd, "compile-commands-directory")
	compiler := GetString(cmd, "compiler")
	showEquations := GetFlag(cmd, "show-equations")

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
		if err := checkUnit(provider, compiler, e, showEquations); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	return 0
}

func checkUnit(provider clangir.Provider, compiler string, e compiledb.Entry, showEquations bool) error {
	args, err := compiledb.ResolvedArguments(compiler, e)
	if err != nil {
		return err
	}

	root, release, err := provider.Parse(context.Background(), e.Directory, e.File, args)
	if err != nil {
		return err
	}
	defer release()

	result := astwalk.Walk(root)

	fmt.Printf("%s:\n", e.File)

	sys := linear.Linearize(result.Constraints)

	if showEquations {
		if err := sys.WriteCSV(os.Stdout); err != nil {
			log.Warnf("writing equation dump for %s: %v", e.File, err)
		}
	}

	sol, ok := repair.Solve(sys, result.RepairVars, repair.DefaultConfig())
	if !ok {
		// spec.md §7: infeasibility is a stderr notice, not an error exit.
		if err := report.WriteUnrepairable(os.Stderr); err != nil {
			return err
		}
	} else {
		log.Debug(report.PinnedSummary(sol, len(result.RepairVars)))

		dimRepairs := report.FromSolution(sys, result.RepairVars, sol)
		if err := report.WriteDimRepairs(os.Stdout, dimRepairs); err != nil {
			return err
		}
	}

	if frameReport, ok := result.Frames.Solve(); ok {
		frameRepairs := report.FromFrameReport(frameReport)
		if err := report.WriteFrameReport(os.Stdout, frameRepairs, frameReport.Total); err != nil {
			return err
		}
	}

	return nil
}
