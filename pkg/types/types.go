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

// Package types models the SI dimension vector and the decimal scalar-prefix
// type carried by every object in the dimensional-constraint system.
package types

import "fmt"

// SIBaseUnit indexes one of the seven SI base dimensions.  The
// index<->name mapping is total and fixed; it must never be reordered once
// constraints have been built against it.
type SIBaseUnit int

// The seven SI base dimensions, in the fixed order used throughout the
// dimension vector and the linearizer's column layout.
const (
	Second SIBaseUnit = iota
	Meter
	Kilogram
	Ampere
	Kelvin
	Mole
	Candela
	// NumBaseUnits is the width of an SI dimension vector.
	NumBaseUnits
)

// ColumnsPerObject is the width of the column block the linearizer assigns
// to each distinct object: one scalar-prefix column plus one per base unit.
const ColumnsPerObject = 1 + int(NumBaseUnits)

func (d SIBaseUnit) String() string {
	switch d {
	case Second:
		return "Second"
	case Meter:
		return "Meter"
	case Kilogram:
		return "Kilogram"
	case Ampere:
		return "Ampere"
	case Kelvin:
		return "Kelvin"
	case Mole:
		return "Mole"
	case Candela:
		return "Candela"
	default:
		return fmt.Sprintf("SIBaseUnit(%d)", int(d))
	}
}

// Type pairs a decimal log10 scalar prefix with an SI dimension vector.  All
// dimensional arithmetic is additive on this 8-component vector.
type Type struct {
	// ScalarPrefix is log10 of the unit's numeric scaling relative to the
	// SI base (e.g. centimeter has ScalarPrefix -2).
	ScalarPrefix float64
	// SIUnits holds the integer exponent of each base dimension.
	SIUnits [NumBaseUnits]int
}

// Equals checks component-wise equality, including the scalar prefix.
func (t Type) Equals(o Type) bool {
	if t.ScalarPrefix != o.ScalarPrefix {
		return false
	}

	for d := range t.SIUnits {
		if t.SIUnits[d] != o.SIUnits[d] {
			return false
		}
	}

	return true
}

func dims(d SIBaseUnit, exp int) [NumBaseUnits]int {
	var u [NumBaseUnits]int
	u[d] = exp

	return u
}

// vocabulary is the closed set of textual unit literals recognised by the
// type-annotation grammar (spec.md §4.1).  Lengths are defined relative to
// the meter at scalar-prefix 0; the centimeter sits at -2 (and its powers
// scale accordingly), matching the worked example in spec.md §3.
var vocabulary = map[string]Type{
	"m":     {0, dims(Meter, 1)},
	"m^2":   {0, dims(Meter, 2)},
	"m^3":   {0, dims(Meter, 3)},
	"cm":    {-2, dims(Meter, 1)},
	"cm^2":  {-4, dims(Meter, 2)},
	"cm^3":  {-6, dims(Meter, 3)},
	"s":     {0, dims(Second, 1)},
	"kg":    {0, dims(Kilogram, 1)},
	"g":     {-3, dims(Kilogram, 1)},
	"A":     {0, dims(Ampere, 1)},
	"K":     {0, dims(Kelvin, 1)},
	"mol":   {0, dims(Mole, 1)},
	"cd":    {0, dims(Candela, 1)},
	"Hz":    {0, dims(Second, -1)},
	"m/s":   {0, func() [NumBaseUnits]int { u := dims(Meter, 1); u[Second] = -1; return u }()},
	"m/s^2": {0, func() [NumBaseUnits]int { u := dims(Meter, 1); u[Second] = -2; return u }()},
}

// ParseUnit looks up a textual unit literal (e.g. "cm^2") in the closed
// vocabulary of spec.md §4.1.
func ParseUnit(text string) (Type, bool) {
	t, ok := vocabulary[text]
	return t, ok
}
