package model

// Units: all values are SI (N, m, Pa). The display layer converts
// E to GPa, forces to kN, moments to kNm and deflection to mm.

// Fixity is the kinematic restraint type of a support
type Fixity string

const (
	Pinned Fixity = "pinned" // vertical translation restrained
	Roller Fixity = "roller" // vertical translation restrained (same as Pinned here)
	Fixed  Fixity = "fixed"  // vertical translation and rotation restrained
)

// RestrainsRotation reports whether the fixity restrains rotation
func (f Fixity) RestrainsRotation() bool { return f == Fixed }

// Valid reports whether f is a known fixity
func (f Fixity) Valid() bool {
	return f == Pinned || f == Roller || f == Fixed
}

// Support is a point restraint along the beam
type Support struct {
	Position float64 `json:"position"` // m from left end
	Fixity   Fixity  `json:"fixity"`
}

// LoadType identifies the shape of a load
type LoadType string

const (
	UDL             LoadType = "udl"         // constant intensity between two positions
	PointLoad       LoadType = "point"       // concentrated force at one position
	TrapezoidalLoad LoadType = "trapezoidal" // linearly varying intensity between two positions
)

// Arity returns the number of positions and magnitudes a load of type t carries
func (t LoadType) Arity() (positions, magnitudes int) {
	switch t {
	case PointLoad:
		return 1, 1
	case UDL:
		return 2, 1
	case TrapezoidalLoad:
		return 2, 2
	}
	return 0, 0
}

// LoadCase is a categorized source of load
type LoadCase string

const (
	Dead       LoadCase = "Dead"
	Live       LoadCase = "Live"
	RoofLive   LoadCase = "Roof Live"
	Wind       LoadCase = "Wind"
	Earthquake LoadCase = "Earthquake"
	Rain       LoadCase = "Rain"
	Snow       LoadCase = "Snow"
)

// Force is the contribution of one load case to a load
type Force struct {
	Case      LoadCase  `json:"case"`
	Magnitude []float64 `json:"magnitude"` // same arity as the owning load
}

// Load is a vertical load on the beam. Positive magnitudes act downward.
//
// Magnitude holds the resolved values consumed by the solver. Forces holds
// the per-case values consumed by the combination engine; it is left empty
// on combined loads.
type Load struct {
	Type      LoadType  `json:"type"`
	Position  []float64 `json:"position"`            // m; one for PointLoad, start/end otherwise
	Magnitude []float64 `json:"magnitude,omitempty"` // N or N/m
	Forces    []Force   `json:"forces,omitempty"`
}

// Start returns the first position of the load
func (l Load) Start() float64 { return l.Position[0] }

// End returns the last position of the load
func (l Load) End() float64 { return l.Position[len(l.Position)-1] }

// Intensity returns the load intensity at x for distributed loads (N/m).
// Returns 0 outside the loaded interval and for point loads.
func (l Load) Intensity(x float64) float64 {
	switch l.Type {
	case UDL:
		if x < l.Start() || x > l.End() {
			return 0
		}
		return l.Magnitude[0]
	case TrapezoidalLoad:
		a, b := l.Start(), l.End()
		if x < a || x > b {
			return 0
		}
		return l.Magnitude[0] + (l.Magnitude[1]-l.Magnitude[0])*(x-a)/(b-a)
	}
	return 0
}

// Resultant returns the total downward force of the load and its centroid
func (l Load) Resultant() (force, centroid float64) {
	switch l.Type {
	case PointLoad:
		return l.Magnitude[0], l.Start()
	case UDL:
		a, b := l.Start(), l.End()
		return l.Magnitude[0] * (b - a), (a + b) / 2
	case TrapezoidalLoad:
		a, b := l.Start(), l.End()
		qa, qb := l.Magnitude[0], l.Magnitude[1]
		length := b - a
		force = (qa + qb) * length / 2
		if force == 0 {
			return 0, (a + b) / 2
		}
		// moment of the trapezoid about a divided by its area
		m := length * length * (qa + 2*qb) / 6
		return force, a + m/force
	}
	return 0, 0
}

// BeamGeometry describes one beam analysis request
type BeamGeometry struct {
	Span     float64   `json:"span"` // m
	E        float64   `json:"E"`    // elastic modulus (Pa)
	I        float64   `json:"I"`    // second moment of area (m⁴)
	A        float64   `json:"A"`    // cross-section area (m²)
	Supports []Support `json:"supports"`
	Loads    []Load    `json:"loads"`
}

// WithLoads returns a copy of g with its loads replaced
func (g BeamGeometry) WithLoads(loads []Load) BeamGeometry {
	g.Loads = loads
	return g
}

// EI returns the flexural rigidity (N·m²)
func (g BeamGeometry) EI() float64 { return g.E * g.I }
