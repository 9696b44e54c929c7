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

// Package repair implements the sparsest-repair branch-and-bound search of
// spec.md §4.4, including the least-squares oracle contract of §6.
package repair

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// lstsq implements the least-squares oracle contract of spec.md §6: given a
// (possibly rank-deficient) coefficient matrix A and right-hand side b, it
// returns the minimum-norm least-squares solution and the l2 residual
// ||Ax-b||.  Singular values at or below eps are treated as zero, which
// both regularizes a rank-deficient system (the "pseudoinverse ridge" of
// §4.4) and selects the minimum-norm solution among the ones satisfying the
// resulting reduced system.
func lstsq(rows [][]float64, b []float64, eps float64) (x []float64, residual float64) {
	m := len(rows)

	var n int
	if m > 0 {
		n = len(rows[0])
	}

	if n == 0 {
		return nil, 0
	}

	if m == 0 {
		return make([]float64, n), 0
	}

	flat := make([]float64, 0, m*n)
	for _, row := range rows {
		flat = append(flat, row...)
	}

	a := mat.NewDense(m, n, flat)
	bv := mat.NewVecDense(m, append([]float64(nil), b...))

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return make([]float64, n), math.Inf(1)
	}

	values := svd.Values(nil)

	var u, v mat.Dense

	svd.UTo(&u)
	svd.VTo(&v)

	xv := mat.NewVecDense(n, nil)

	for i, sigma := range values {
		if sigma <= eps {
			continue
		}

		ui := mat.Col(nil, i, &u)

		var dot float64
		for r := 0; r < m; r++ {
			dot += ui[r] * b[r]
		}

		coeff := dot / sigma

		vi := mat.Col(nil, i, &v)
		for j := 0; j < n; j++ {
			xv.SetVec(j, xv.AtVec(j)+coeff*vi[j])
		}
	}

	var axv mat.VecDense

	axv.MulVec(a, xv)

	var diff mat.VecDense

	diff.SubVec(&axv, bv)
	residual = mat.Norm(&diff, 2)

	x = make([]float64, n)
	for j := range x {
		x[j] = xv.AtVec(j)
	}

	return x, residual
}
