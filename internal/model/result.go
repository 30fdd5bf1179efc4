package model

import "math"

// Reaction holds the support reaction components.
// Fy is positive upward, Mz counter-clockwise positive.
type Reaction struct {
	Fx float64 `json:"Fx"` // N
	Fy float64 `json:"Fy"` // N
	Mz float64 `json:"Mz"` // N·m
}

// Extremum is a location and the signed value of largest magnitude there
type Extremum struct {
	X     float64 `json:"x"`
	Value float64 `json:"value"`
}

// AnalysisResult is an immutable snapshot produced by one solve.
//
// X is non-decreasing: positions where shear jumps are sampled twice,
// once for each side of the discontinuity.
type AnalysisResult struct {
	X          []float64 `json:"x_values"`
	Shear      []float64 `json:"shear_force"`    // N
	Moment     []float64 `json:"bending_moment"` // N·m, sagging positive
	Deflection []float64 `json:"deflection"`     // m, upward positive
	Axial      []float64 `json:"axial_force"`    // N, tension positive

	Span float64 `json:"span"` // m

	// keyed by support position
	Reactions map[float64]Reaction `json:"-"`

	MaxShear      Extremum `json:"max_shear"`
	MaxBending    Extremum `json:"max_bending"`
	MaxDeflection Extremum `json:"max_deflection"`
}

// ReactionAt returns the reaction at the support located at pos, matched
// with SamePosition
func (r *AnalysisResult) ReactionAt(pos float64) (Reaction, bool) {
	if rc, ok := r.Reactions[pos]; ok {
		return rc, true
	}
	for p, rc := range r.Reactions {
		if SamePosition(p, pos, r.Span) {
			return rc, true
		}
	}
	return Reaction{}, false
}

// FindExtremum returns the sample of largest absolute value.
// Ties keep the first occurrence.
func FindExtremum(x, values []float64) Extremum {
	var e Extremum
	best := -1.0
	for i, v := range values {
		if a := math.Abs(v); a > best {
			best = a
			e = Extremum{X: x[i], Value: v}
		}
	}
	return e
}
