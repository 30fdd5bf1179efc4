package design

import (
	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/model"
)

// Status is the verdict of a design check
type Status string

const (
	Pass Status = "PASS"
	Fail Status = "FAIL"
)

// DefaultTolerance absorbs floating-point noise at utilization 1.0
const DefaultTolerance = 1e-6

// Rebar describes the longitudinal reinforcement of a concrete section
type Rebar struct {
	As        float64 `json:"As"`     // tension steel area (m²)
	AsComp    float64 `json:"AsComp"` // compression steel area (m²), 0 if singly reinforced
	Depth     float64 `json:"d"`      // effective depth to tension steel (m)
	CompDepth float64 `json:"dComp"`  // depth to compression steel (m)
}

// SectionProperties are the resolved properties of a cross-section (SI units)
type SectionProperties struct {
	Name string  `json:"name"`
	D    float64 `json:"d"`  // depth (m)
	B    float64 `json:"b"`  // breadth (m)
	Ix   float64 `json:"Ix"` // m⁴
	Iy   float64 `json:"Iy"` // m⁴
	Zx   float64 `json:"Zx"` // elastic section modulus (m³)
	Zy   float64 `json:"Zy"` // m³
	A    float64 `json:"A"`  // m²
	E    float64 `json:"E"`  // elastic modulus (Pa)

	// Strengths holds characteristic material strengths by name (Pa),
	// e.g. "fb", "fs" for timber, "fc", "fy" for reinforced concrete
	Strengths map[string]float64 `json:"strengths"`

	Rebar *Rebar `json:"rebar,omitempty"`
}

// Strength returns a named material strength
func (s *SectionProperties) Strength(name string) (float64, bool) {
	v, ok := s.Strengths[name]
	return v, ok
}

// DesignParameters are the code inputs of a design check
type DesignParameters struct {
	Country          string  `json:"country"`
	Code             string  `json:"code"`             // name of the code rules to apply
	Material         string  `json:"material"`         // e.g. "sawn timber", "reinforced concrete"
	RestraintSpacing float64 `json:"restraintSpacing"` // compression edge restraint spacing Lay (m)
	Moisture         string  `json:"moisture"`         // "dry" or "wet"
	Temperature      string  `json:"temperature"`      // service temperature condition
	MemberCount      int     `json:"memberCount"`      // members sharing the load
	Phi              float64 `json:"phi"`              // capacity factor φ, 0 for the code default

	// K holds modification factors k1…k12 when supplied
	K map[string]float64 `json:"k"`
}

// Factor returns the named modification factor, or 1 when absent
func (p DesignParameters) Factor(name string) float64 {
	if v, ok := p.K[name]; ok {
		return v
	}
	return 1
}

// Utilization holds demand/capacity ratios
type Utilization struct {
	Bending float64 `json:"bending_strength"`
	Shear   float64 `json:"shear_strength"`
}

// Max returns the larger utilization
func (u Utilization) Max() float64 {
	if u.Bending > u.Shear {
		return u.Bending
	}
	return u.Shear
}

// CapacityData is the verdict part of a design result
type CapacityData struct {
	Status      Status             `json:"status"`
	Utilization Utilization        `json:"utilization"`
	Capacities  map[string]float64 `json:"capacities"`
}

// DesignResult is the analysis of one combination plus its design verdict
type DesignResult struct {
	model.AnalysisResult

	CombinationName string  `json:"combinationName"`
	BendingCapacity float64 `json:"bending_capacity"` // N·m
	ShearCapacity   float64 `json:"shear_capacity"`   // N

	CapacityData CapacityData `json:"capacity_data"`
}

// MaxUtilization returns max(bending, shear) utilization
func (r *DesignResult) MaxUtilization() float64 {
	return r.CapacityData.Utilization.Max()
}

// Outcome is the entry of a batch check for one combination
type Outcome struct {
	Combination combination.LoadCombination
	Result      *DesignResult   // nil when skipped or failed
	Reaction    *model.Reaction // set for Reaction combinations
	Skipped     bool
	Reason      string // why the combination was skipped
	Err         error
}
