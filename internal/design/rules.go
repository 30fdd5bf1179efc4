package design

import "github.com/alexiusacademia/gobeam/internal/combination"

// CapacityInput is what a design code needs to compute member capacity
type CapacityInput struct {
	Section     *SectionProperties
	Params      DesignParameters
	Combination combination.LoadCombination // the combination being checked, zero when unknown
	Span        float64                     // m
}

// Capacity is the factored member capacity
type Capacity struct {
	Bending float64 // N·m
	Shear   float64 // N

	// Factors lists the code factors used (φ, k1…k12, intermediate capacities)
	Factors map[string]float64
}

// CodeRules computes member capacity for one design standard and material.
// Implementations must be safe for concurrent use.
type CodeRules interface {
	Name() string
	Capacity(in CapacityInput) (Capacity, error)
}
