// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "math"

const (
	minGrade     = 4.0
	gradeSpan    = 6.0
	gradeQuantum = 0.25
)

// ToFinnishGrade maps a score of x out of denom linearly onto the 4-10 scale
// and floors the result to a multiple of 0.25. It never rounds up: 7/8 gives
// 9.25 and 5/8 gives 7.75.
func ToFinnishGrade(x, denom float64) float64 {
	g := x/denom*gradeSpan + minGrade
	return g - floorMod(g, gradeQuantum)
}

// floorMod returns x mod y with the sign of y, the remainder a floored
// division leaves.
func floorMod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}
