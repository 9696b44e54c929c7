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

// Package frame implements the reference-frame constraint engine of
// spec.md §4.5: encoding each assignment's frame compatibility as a
// disjunction of (same-frame, no-op) or (known conversion, repair=1)
// cases, and minimizing the total number of conversions.
package frame

import "regexp"

// Inertial is the inertial-frame tag of a Frame.
type Inertial int

// The two concrete inertial frames, plus the wildcard used only on one
// side of a conversion pattern (spec.md §3).
const (
	Local Inertial = iota
	Global
	UnconstrainedInertial
)

func (i Inertial) String() string {
	switch i {
	case Local:
		return "local"
	case Global:
		return "global"
	default:
		return "_"
	}
}

// ParseInertial parses one of "local", "global", "_".
func ParseInertial(s string) (Inertial, bool) {
	switch s {
	case "local":
		return Local, true
	case "global":
		return Global, true
	case "_":
		return UnconstrainedInertial, true
	default:
		return 0, false
	}
}

// Temporal is the temporal-frame tag of a Frame.
type Temporal int

// The two concrete temporal frames, plus the wildcard.
const (
	Boot Temporal = iota
	Epoch
	UnconstrainedTemporal
)

func (t Temporal) String() string {
	switch t {
	case Boot:
		return "boot"
	case Epoch:
		return "epoch"
	default:
		return "_"
	}
}

// ParseTemporal parses one of "boot", "epoch", "_".
func ParseTemporal(s string) (Temporal, bool) {
	switch s {
	case "boot":
		return Boot, true
	case "epoch":
		return Epoch, true
	case "_":
		return UnconstrainedTemporal, true
	default:
		return 0, false
	}
}

// InertialCount is the number of values Inertial can take, used by the
// inertial*3+temporal encoding (spec.md §3).
const InertialCount = 3

// Frame is a pair of reference-frame tags attached to a variable.
type Frame struct {
	Inertial Inertial
	Temporal Temporal
}

// Encode returns the flat integer encoding inertial*3+temporal fed to the
// optimizing oracle.
func (f Frame) Encode() int {
	return int(f.Inertial)*InertialCount + int(f.Temporal)
}

// Decode is the inverse of Encode.
func Decode(n int) Frame {
	return Frame{Inertial(n / InertialCount), Temporal(n % InertialCount)}
}

// Conversion identifies which one-step frame conversion (if any) an
// assignment requires.
type Conversion int

// The five conversions of spec.md §4.5/Glossary.
const (
	NoOp Conversion = iota
	LocalToGlobal
	GlobalToLocal
	BootToEpoch
	EpochToBoot
)

func (c Conversion) String() string {
	switch c {
	case NoOp:
		return "NoOp"
	case LocalToGlobal:
		return "LocalToGlobal"
	case GlobalToLocal:
		return "GlobalToLocal"
	case BootToEpoch:
		return "BootToEpoch"
	case EpochToBoot:
		return "EpochToBoot"
	default:
		return "Unknown"
	}
}

// frameAnnotation matches the "frame(var) = (iframe, tframe)" grammar of
// spec.md §4.1/§6.
var frameAnnotation = regexp.MustCompile(
	`frame\(([A-Za-z_][A-Za-z0-9_]*)\)\s*=\s*\((local|global|_),\s*(boot|epoch|_)\)`,
)

// ParseFrameComment tries to match a structured doc comment against the
// frame annotation grammar.
func ParseFrameComment(text string) (name string, f Frame, ok bool) {
	m := frameAnnotation.FindStringSubmatch(text)
	if m == nil {
		return "", Frame{}, false
	}

	iframe, _ := ParseInertial(m[2])
	tframe, _ := ParseTemporal(m[3])

	return m[1], Frame{iframe, tframe}, true
}
