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

// Package report renders a solved repair vector and a frame-engine report
// as the human-readable diagnostics of spec.md §4.6: nonzero scalar-prefix
// coefficients become "pow(10.0, ...)" suggestions keyed by source
// location, and frame conversions become a parallel per-assignment
// summary.
package report

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/obicons/go-scalpel/pkg/frame"
	"github.com/obicons/go-scalpel/pkg/linear"
	"github.com/obicons/go-scalpel/pkg/repair"
)

// zeroThreshold is the "effectively zero" cutoff spec.md §4.6 names.
const zeroThreshold = 1e-8

// DimRepair is one nonzero scalar-prefix coefficient the solution assigned
// to a synthetic repair object, ready to render as a suggested source
// edit.
type DimRepair struct {
	Location   string
	Expression string
	Label      string
	Exponent   float64
}

// String formats a repair the way spec.md §4.6 specifies: the emitted
// factor is pow(10, -x), the negation of the solved coefficient (see
// spec.md §9, "Repair-report sign").
func (d DimRepair) String() string {
	return fmt.Sprintf("%s: (pow(10.0, %.3f) * (%s)) (%s)", d.Location, -d.Exponent, d.Expression, d.Label)
}

// FromSolution extracts every repair variable whose solved scalar-prefix
// coefficient exceeds the zero threshold, in the order vars were
// discovered (spec.md §4.6).
func FromSolution(sys *linear.System, vars []repair.Variable, sol *repair.Solution) []DimRepair {
	var out []DimRepair

	for _, v := range vars {
		base, ok := sys.ColumnOf(v.Object.Label)
		if !ok {
			continue
		}

		x := sol.X[base]
		if x > zeroThreshold || x < -zeroThreshold {
			out = append(out, DimRepair{
				Location:   v.Context.Location,
				Expression: v.Context.Expression,
				Label:      v.Object.Label,
				Exponent:   x,
			})
		}
	}

	return out
}

// PinnedSummary formats a diagnostic line naming how many repair
// variables the sparsest-repair search (spec.md §4.4) structurally
// pinned to exactly zero, out of the total repair variables it
// considered. This is separate from the fixed §4.6 repair-report wire
// format: it's a sparsity diagnostic for --verbose logging, not a
// reported repair.
func PinnedSummary(sol *repair.Solution, total int) string {
	return fmt.Sprintf(
		"sparsest-repair search pinned %d of %d repair variables to zero",
		len(sol.PinnedVariables()), total,
	)
}

// WriteDimRepairs writes the dimensional repair report to w: one line per
// nonzero repair (spec.md §6, "Diagnostic output format"), or a notice
// that the program needed no correction. When w is an interactive
// terminal (IsInteractive), the fixed one-line-per-repair wire format of
// spec.md §4.6 is instead laid out as a column-aligned table via
// text/tabwriter, the same tty-only presentation go-corset's own
// debug/view commands reserve for a live terminal (pkg/cmd/inspector);
// a redirected pipe or file always gets the exact contract format so
// scripts consuming "scalpel check" output are unaffected.
func WriteDimRepairs(w io.Writer, repairs []DimRepair) error {
	if len(repairs) == 0 {
		_, err := fmt.Fprintln(w, "Program is dimensionally consistent; no repairs needed.")
		return err
	}

	if IsInteractive(w) {
		return writeDimRepairsTable(w, repairs)
	}

	return writeDimRepairsPlain(w, repairs)
}

// writeDimRepairsPlain emits the fixed one-line-per-repair wire format of
// spec.md §4.6, used whenever w is not an interactive terminal so that
// scripts consuming "scalpel check" output see a stable contract.
func writeDimRepairsPlain(w io.Writer, repairs []DimRepair) error {
	for _, r := range repairs {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}

	return nil
}

// writeDimRepairsTable lays the same repairs out as a column-aligned
// table via text/tabwriter, the tty-only presentation go-corset's own
// debug/view commands reserve for a live terminal (pkg/cmd/inspector).
func writeDimRepairsTable(w io.Writer, repairs []DimRepair) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "LOCATION\tREPAIR\tEXPRESSION\tLABEL")

	for _, r := range repairs {
		fmt.Fprintf(tw, "%s\tpow(10.0, %.3f)\t%s\t%s\n", r.Location, -r.Exponent, r.Expression, r.Label)
	}

	return tw.Flush()
}

// WriteUnrepairable writes spec.md §7's infeasibility notice. The caller
// is responsible for exiting 0 regardless (infeasibility is not an error
// exit).
func WriteUnrepairable(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Program not repairable.")
	return err
}

// FrameRepair is one assignment's resolved frame conversion, ready to
// render.
type FrameRepair struct {
	Location   string
	Conversion frame.Conversion
	Repair     int
}

// FromFrameReport converts a solved frame.Report into its renderable form.
func FromFrameReport(r *frame.Report) []FrameRepair {
	out := make([]FrameRepair, len(r.Results))
	for i, res := range r.Results {
		out[i] = FrameRepair{Location: res.Location, Conversion: res.Conversion, Repair: res.Repair}
	}

	return out
}

// WriteFrameReport writes the frame-repair summary to w: a conversion
// line per assignment and the total repair count (spec.md §4.5). As with
// WriteDimRepairs, an interactive terminal gets a column-aligned table
// instead of the fixed "LOCATION: apply CONV (repair=N)" line format;
// redirected output is unaffected.
func WriteFrameReport(w io.Writer, repairs []FrameRepair, total int) error {
	if IsInteractive(w) {
		return writeFrameReportTable(w, repairs, total)
	}

	return writeFrameReportPlain(w, repairs, total)
}

// writeFrameReportPlain emits the fixed "LOCATION: apply CONV
// (repair=N)" line format, used whenever w is not an interactive
// terminal.
func writeFrameReportPlain(w io.Writer, repairs []FrameRepair, total int) error {
	for _, r := range repairs {
		if r.Conversion == frame.NoOp {
			continue
		}

		if _, err := fmt.Fprintf(w, "%s: apply %s (repair=%d)\n", r.Location, r.Conversion, r.Repair); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "total frame repairs: %d\n", total)

	return err
}

// writeFrameReportTable lays the same repairs out as a column-aligned
// table, mirroring writeDimRepairsTable's tty-only presentation.
func writeFrameReportTable(w io.Writer, repairs []FrameRepair, total int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "LOCATION\tCONVERSION\tREPAIR")

	for _, r := range repairs {
		if r.Conversion == frame.NoOp {
			continue
		}

		fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Location, r.Conversion, r.Repair)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "total frame repairs: %d\n", total)

	return err
}

// IsInteractive reports whether w is an *os.File attached to a terminal,
// in which case the reports are laid out as tables. Anything else (a
// regular file, a pipe, a bytes.Buffer in tests) is not interactive.
func IsInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
