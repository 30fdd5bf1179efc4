package model

import (
	"math"
	"sort"
)

// PositionTolerance is the relative tolerance used to compare positions along the span
const PositionTolerance = 1e-9

// SamePosition reports whether a and b are one position along a beam of the given span
func SamePosition(a, b, span float64) bool {
	return math.Abs(a-b) <= PositionTolerance*math.Max(1, span)
}

// Validate checks the geometry before analysis.
// Returns an *Error of kind InvalidGeometry or Unstable.
func (g BeamGeometry) Validate() error {
	const op = "validate"

	if !finite(g.Span) || g.Span <= 0 {
		return Errorf(InvalidGeometry, op, "span must be positive, got %g", g.Span)
	}
	if !finite(g.E) || g.E <= 0 {
		return Errorf(InvalidGeometry, op, "elastic modulus must be positive, got %g", g.E)
	}
	if !finite(g.I) || g.I <= 0 {
		return Errorf(InvalidGeometry, op, "second moment of area must be positive, got %g", g.I)
	}
	if !finite(g.A) || g.A < 0 {
		return Errorf(InvalidGeometry, op, "area must not be negative, got %g", g.A)
	}

	if err := g.validateSupports(); err != nil {
		return err
	}
	for i, l := range g.Loads {
		if err := g.validateLoad(i, l); err != nil {
			return err
		}
	}
	return nil
}

func (g BeamGeometry) validateSupports() error {
	const op = "validate"

	if len(g.Supports) == 0 {
		return Errorf(Unstable, op, "beam has no supports")
	}

	tol := PositionTolerance * g.Span
	positions := make([]float64, 0, len(g.Supports))
	for i, s := range g.Supports {
		if !s.Fixity.Valid() {
			return Errorf(InvalidGeometry, op, "support %d has unknown fixity %q", i+1, s.Fixity)
		}
		if !finite(s.Position) || s.Position < -tol || s.Position > g.Span+tol {
			return Errorf(InvalidGeometry, op, "support %d at %g lies outside [0, %g]", i+1, s.Position, g.Span)
		}
		positions = append(positions, s.Position)
	}

	sort.Float64s(positions)
	for i := 1; i < len(positions); i++ {
		if positions[i]-positions[i-1] <= tol {
			return Errorf(InvalidGeometry, op, "duplicate support position %g", positions[i])
		}
	}

	// a single support can only hold the beam when it is a fixed (cantilever) support
	if len(g.Supports) == 1 && !g.Supports[0].Fixity.RestrainsRotation() {
		return Errorf(Unstable, op, "single %s support cannot restrain rotation; use a fixed support", g.Supports[0].Fixity)
	}
	return nil
}

func (g BeamGeometry) validateLoad(i int, l Load) error {
	const op = "validate"

	npos, nmag := l.Type.Arity()
	if npos == 0 {
		return Errorf(InvalidGeometry, op, "load %d has unknown type %q", i+1, l.Type)
	}
	if len(l.Position) != npos {
		return Errorf(InvalidGeometry, op, "%s load %d needs %d position(s), got %d", l.Type, i+1, npos, len(l.Position))
	}
	if len(l.Magnitude) != nmag {
		return Errorf(InvalidGeometry, op, "%s load %d needs %d magnitude(s), got %d", l.Type, i+1, nmag, len(l.Magnitude))
	}

	tol := PositionTolerance * g.Span
	for _, p := range l.Position {
		if !finite(p) || p < -tol || p > g.Span+tol {
			return Errorf(InvalidGeometry, op, "load %d position %g lies outside [0, %g]", i+1, p, g.Span)
		}
	}
	if npos == 2 && l.Position[1]-l.Position[0] <= tol {
		return Errorf(InvalidGeometry, op, "load %d must start before it ends (%g, %g)", i+1, l.Position[0], l.Position[1])
	}
	for _, m := range l.Magnitude {
		if !finite(m) {
			return Errorf(InvalidGeometry, op, "load %d has a non-finite magnitude", i+1)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
