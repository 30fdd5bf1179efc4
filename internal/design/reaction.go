package design

import (
	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/model"
)

// ReactionFor resolves a Reaction combination: every load case of combo is
// solved on its own and the reactions at combo.Support are superposed with
// the combination multipliers. Cases without loads contribute zero.
func (c *Checker) ReactionFor(g model.BeamGeometry, applied []model.Load, combo combination.LoadCombination) (model.Reaction, error) {
	const op = "reaction"

	if len(combo.Factors) == 0 {
		return model.Reaction{}, model.Errorf(model.UndefinedCombination, op, "combination %q has no factors", combo.Name)
	}
	if !hasSupportAt(g, combo.Support) {
		return model.Reaction{}, model.Errorf(model.InvalidGeometry, op, "combination %q: no support at x = %g", combo.Name, combo.Support)
	}

	var sum model.Reaction
	for _, f := range combo.Factors {
		loads := combination.CaseLoads(applied, f.LoadCase)
		if len(loads) == 0 {
			continue
		}
		res, err := c.solver().Solve(g.WithLoads(loads))
		if err != nil {
			return model.Reaction{}, err
		}
		rc, ok := res.ReactionAt(combo.Support)
		if !ok {
			return model.Reaction{}, model.Errorf(model.InvalidGeometry, op, "combination %q: no reaction at x = %g", combo.Name, combo.Support)
		}
		m := f.Multiplier()
		sum.Fx += m * rc.Fx
		sum.Fy += m * rc.Fy
		sum.Mz += m * rc.Mz
	}
	return sum, nil
}

func hasSupportAt(g model.BeamGeometry, x float64) bool {
	for _, s := range g.Supports {
		if model.SamePosition(s.Position, x, g.Span) {
			return true
		}
	}
	return false
}
