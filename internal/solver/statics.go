package solver

import "github.com/alexiusacademia/gobeam/internal/model"

// isDeterminate reports whether the two global equilibrium equations are
// enough: exactly two supports, neither restraining rotation
func isDeterminate(g model.BeamGeometry) bool {
	if len(g.Supports) != 2 {
		return false
	}
	for _, s := range g.Supports {
		if s.Fixity.RestrainsRotation() {
			return false
		}
	}
	return true
}

// staticReactions solves ΣFy = 0 and ΣM = 0 for a two-support beam
func staticReactions(g model.BeamGeometry) map[float64]model.Reaction {
	a, b := g.Supports[0].Position, g.Supports[1].Position

	var total, moment float64 // downward resultant and its moment about a
	for _, l := range g.Loads {
		f, c := l.Resultant()
		total += f
		moment += f * (c - a)
	}

	rb := moment / (b - a)
	ra := total - rb
	return map[float64]model.Reaction{
		a: {Fy: ra},
		b: {Fy: rb},
	}
}
