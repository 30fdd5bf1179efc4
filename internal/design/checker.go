// Package design checks beam demand against code capacity per load
// combination and finds the governing combination.
package design

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/model"
	"github.com/alexiusacademia/gobeam/internal/solver"
)

// Checker runs the solver and the code rules for a combination
type Checker struct {
	Rules     CodeRules
	Solver    *solver.Solver
	Tolerance float64 // accepted utilization above 1.0
	Workers   int     // concurrent combinations in CheckAll, ≤ 0 for one per combination
	Logger    *slog.Logger
}

// NewChecker creates a checker with the default solver and tolerance
func NewChecker(rules CodeRules) *Checker {
	return &Checker{
		Rules:     rules,
		Solver:    solver.New(),
		Tolerance: DefaultTolerance,
		Logger:    slog.Default(),
	}
}

// Check designs the beam for one combined load set
func (c *Checker) Check(g model.BeamGeometry, combined []model.Load, section *SectionProperties, params DesignParameters) (*DesignResult, error) {
	return c.check(g, combination.LoadCombination{}, combined, section, params)
}

// CheckCombination combines the applied loads and designs the beam for the result.
// Undefined, Reaction and zero-load combinations return an UndefinedCombination error.
func (c *Checker) CheckCombination(g model.BeamGeometry, applied []model.Load, combo combination.LoadCombination, section *SectionProperties, params DesignParameters) (*DesignResult, error) {
	combined, ok := combination.Combine(applied, combo)
	if !ok {
		return nil, model.Errorf(model.UndefinedCombination, "check", "combination %q has nothing to analyze", combo.Name)
	}
	return c.check(g, combo, combined, section, params)
}

func (c *Checker) check(g model.BeamGeometry, combo combination.LoadCombination, combined []model.Load, section *SectionProperties, params DesignParameters) (*DesignResult, error) {
	const op = "check"

	if section == nil {
		return nil, model.Errorf(model.UnresolvedSection, op, "no section properties")
	}
	if c.Rules == nil {
		return nil, fmt.Errorf("%s: no code rules configured", op)
	}
	if combination.IsZero(combined) {
		return nil, model.Errorf(model.UndefinedCombination, op, "combination %q has all-zero loads", combo.Name)
	}

	res, err := c.solver().Solve(g.WithLoads(combined))
	if err != nil {
		return nil, err
	}

	capacity, err := c.Rules.Capacity(CapacityInput{
		Section:     section,
		Params:      params,
		Combination: combo,
		Span:        g.Span,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %s capacity: %w", op, c.Rules.Name(), err)
	}
	if !(capacity.Bending > 0) || !(capacity.Shear > 0) {
		return nil, fmt.Errorf("%s: %s returned non-positive capacity (bending %g, shear %g)",
			op, c.Rules.Name(), capacity.Bending, capacity.Shear)
	}

	util := Utilization{
		Bending: math.Abs(res.MaxBending.Value) / capacity.Bending,
		Shear:   math.Abs(res.MaxShear.Value) / capacity.Shear,
	}
	status := Pass
	if util.Bending > 1+c.Tolerance || util.Shear > 1+c.Tolerance {
		status = Fail
	}

	return &DesignResult{
		AnalysisResult:  *res,
		CombinationName: combo.Name,
		BendingCapacity: capacity.Bending,
		ShearCapacity:   capacity.Shear,
		CapacityData: CapacityData{
			Status:      status,
			Utilization: util,
			Capacities:  capacity.Factors,
		},
	}, nil
}

func (c *Checker) solver() *solver.Solver {
	if c.Solver == nil {
		return solver.New()
	}
	return c.Solver
}

func (c *Checker) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
