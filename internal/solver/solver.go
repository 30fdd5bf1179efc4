// Package solver computes support reactions and shear, moment, deflection
// and axial diagrams of a straight beam.
//
// The beam is idealized as a chain of Euler-Bernoulli elements between
// consecutive stations (beam ends, supports, load start/end positions).
// Statically determinate two-support beams take their reactions from the
// equilibrium equations; every other configuration (continuous beams,
// propped and plain cantilevers) goes through the stiffness method. In both
// cases nodal displacements come from the assembled stiffness system, shear
// and moment from the cut method and deflection from integrating M/EI.
//
// Sign convention: forces and deflections upward positive, load magnitudes
// downward positive, bending moment sagging positive, rotations and reaction
// moments counter-clockwise positive.
package solver

import "github.com/alexiusacademia/gobeam/internal/model"

// Defaults for a new Solver
const (
	DefaultSubdivisions = 20
	DefaultMaxCondition = 1e13
)

// Solver holds sampling and conditioning options. The zero value is not
// usable; call New. A Solver is safe for concurrent use.
type Solver struct {
	Subdivisions int     // interior stations per element
	MaxCondition float64 // largest accepted condition number of the stiffness matrix
}

// New returns a solver with default options
func New() *Solver {
	return &Solver{
		Subdivisions: DefaultSubdivisions,
		MaxCondition: DefaultMaxCondition,
	}
}

// Solve analyzes g with the default solver
func Solve(g model.BeamGeometry) (*model.AnalysisResult, error) {
	return New().Solve(g)
}

// Solve analyzes one fully resolved load set. The result is a fresh snapshot;
// g is not modified.
func (s *Solver) Solve(g model.BeamGeometry) (*model.AnalysisResult, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if s.Subdivisions < 1 {
		return nil, model.Errorf(model.InvalidGeometry, "solve", "subdivisions must be at least 1, got %d", s.Subdivisions)
	}

	m := newMesh(g)
	sys := assemble(m, g)
	u, err := s.solve(sys)
	if err != nil {
		return nil, err
	}

	react := reactions(m, sys, u, g)
	if isDeterminate(g) {
		react = staticReactions(g)
	}

	res := s.sample(m, g, newCut(g, react, m.tol), u)
	res.Span = g.Span
	res.Reactions = react
	return res, nil
}
