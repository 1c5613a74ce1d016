// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import "github.com/kashifulhaque/tinyndarray/simd"

// PackLHS packs rows [rowStart, rowStart+panelRows) and columns
// [colStart, colStart+panelK) of the M x K matrix A into micro-panels of mr
// rows laid out K-first:
//
//	packed[panel*panelK*mr + kk*mr + r] = A[rowStart+panel*mr+r, colStart+kk]
//
// Rows past the end of the panel are zero padded so the micro-kernel can
// always read full mr-wide columns. Returns the number of live rows in the
// last micro-panel.
func PackLHS[T simd.Floats](a, packed []T, m, k, rowStart, colStart, panelRows, panelK, mr int) int {
	numMicroPanels := (panelRows + mr - 1) / mr
	activeRowsLast := panelRows - (numMicroPanels-1)*mr

	packIdx := 0
	for panel := range numMicroPanels {
		baseRow := rowStart + panel*mr
		rows := mr
		if panel == numMicroPanels-1 {
			rows = activeRowsLast
		}
		for kk := range panelK {
			col := colStart + kk
			dst := packed[packIdx : packIdx+mr]
			for r := range rows {
				dst[r] = a[(baseRow+r)*k+col]
			}
			for r := rows; r < mr; r++ {
				dst[r] = 0
			}
			packIdx += mr
		}
	}
	return activeRowsLast
}

// PackRHS packs rows [rowStart, rowStart+panelK) and columns
// [colStart, colStart+panelCols) of the K x N matrix B into micro-panels of
// nr columns laid out K-first:
//
//	packed[panel*panelK*nr + kk*nr + c] = B[rowStart+kk, colStart+panel*nr+c]
//
// Columns past the end are zero padded. Returns the number of live columns
// in the last micro-panel.
func PackRHS[T simd.Floats](b, packed []T, k, n, rowStart, colStart, panelK, panelCols, nr int) int {
	numMicroPanels := (panelCols + nr - 1) / nr
	activeColsLast := panelCols - (numMicroPanels-1)*nr

	packIdx := 0
	for panel := range numMicroPanels {
		baseCol := colStart + panel*nr
		cols := nr
		if panel == numMicroPanels-1 {
			cols = activeColsLast
		}
		for kk := range panelK {
			src := b[(rowStart+kk)*n+baseCol:]
			dst := packed[packIdx : packIdx+nr]
			copy(dst[:cols], src[:cols])
			clear(dst[cols:])
			packIdx += nr
		}
	}
	return activeColsLast
}
