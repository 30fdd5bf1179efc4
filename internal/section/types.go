package section

import "fmt"

// Section is a named beam cross-section. The outline is either a
// Width × Depth rectangle or a polygon of vertices.
//
// Vertices use a local coordinate system where:
// - Y-axis points upward (compression zone at top for sagging)
// - X-axis points to the right
// - Origin can be at any convenient location
//
// File units are engineering units: mm, mm², MPa.
type Section struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Material    string `json:"material,omitempty"` // e.g. "sawn timber", "reinforced concrete"

	// Rectangular outline (mm), used when Vertices is empty
	Width float64 `json:"b,omitempty"`
	Depth float64 `json:"d,omitempty"`

	// Polygon outline (mm), counter-clockwise, no holes
	Vertices []Point `json:"vertices,omitempty"`

	// Material properties (MPa)
	E         float64            `json:"E"`
	Strengths map[string]float64 `json:"strengths,omitempty"` // fb, fs, fc, fy…

	Reinforcement []RebarLayer `json:"reinforcement,omitempty"`

	// Effective depth override (optional, calculated from reinforcement if not provided)
	EffectiveDepth float64 `json:"effective_depth,omitempty"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x"` // mm
	Y float64 `json:"y"` // mm
}

// RebarLayer represents a layer of reinforcement at a specific depth
type RebarLayer struct {
	Y    float64 `json:"y"`    // mm from bottom of section
	Area float64 `json:"area"` // mm²

	// Optional: description of bars (e.g., "3-25mm")
	Description string `json:"description,omitempty"`

	// Type: "tension" or "compression" (default: auto-detect based on position)
	Type string `json:"type,omitempty"`
}

// Properties holds calculated geometric properties (mm)
type Properties struct {
	// Overall dimensions
	Width  float64 // maximum width
	Height float64 // total height
	Area   float64 // gross area (mm²)

	// Centroid location
	CentroidX float64
	CentroidY float64

	// Second moments of area about the centroidal axes (mm⁴)
	Ix float64
	Iy float64

	// Elastic section moduli to the extreme fibres (mm³)
	Zx float64
	Zy float64

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64

	// Reinforcement summary
	TotalTensionSteel     float64 // mm²
	TotalCompressionSteel float64 // mm²
	EffectiveDepth        float64 // to centroid of tension steel
	CompressionCover      float64 // to centroid of compression steel
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if s.Name == "" {
		return &ValidationError{"section must have a name"}
	}
	if len(s.Vertices) == 0 {
		if s.Width <= 0 || s.Depth <= 0 {
			return &ValidationError{msg: fmt.Sprintf("section %q: rectangle needs positive b and d", s.Name)}
		}
	} else if len(s.Vertices) < 3 {
		return &ValidationError{msg: fmt.Sprintf("section %q must have at least 3 vertices", s.Name)}
	}
	if s.E < 0 {
		return &ValidationError{msg: fmt.Sprintf("section %q: E must not be negative", s.Name)}
	}
	for name, v := range s.Strengths {
		if v < 0 {
			return &ValidationError{msg: fmt.Sprintf("section %q: strength %s must not be negative", s.Name, name)}
		}
	}
	for i, layer := range s.Reinforcement {
		if layer.Area <= 0 {
			return &ValidationError{msg: fmt.Sprintf("section %q: reinforcement layer %d must have positive area", s.Name, i+1)}
		}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
