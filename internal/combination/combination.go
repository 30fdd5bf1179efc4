// Package combination combines independently labelled load cases into one
// load set per load combination by factored superposition.
package combination

import "github.com/alexiusacademia/gobeam/internal/model"

// Type is the limit state a combination is checked for
type Type string

const (
	Ultimate       Type = "ultimate"
	Serviceability Type = "serviceability"

	// Reaction combinations expose a support reaction to another element
	// (load transfer); they are never recombined or design checked
	Reaction Type = "reaction"
)

// LoadCaseFactor is one term of a combination.
// TermFactor carries serviceability multipliers (ψ, creep) on top of Factor;
// nil reads as 1, an explicit 0 removes the case.
type LoadCaseFactor struct {
	LoadCase   model.LoadCase `json:"loadCaseType"`
	Factor     float64        `json:"factor"`
	TermFactor *float64       `json:"termFactor,omitempty"`
}

// Term returns a term factor value for LoadCaseFactor.TermFactor
func Term(v float64) *float64 { return &v }

// Multiplier returns Factor × TermFactor
func (f LoadCaseFactor) Multiplier() float64 {
	if f.TermFactor == nil {
		return f.Factor
	}
	return f.Factor * *f.TermFactor
}

// LoadCombination is a named set of load case factors
type LoadCombination struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Type        Type             `json:"combinationType"`
	Factors     []LoadCaseFactor `json:"loadCaseFactors"`

	// Support is the position of the support a Reaction combination exposes
	Support float64 `json:"support,omitempty"`
}

// Defined reports whether the combination produces a combined load set
func (c LoadCombination) Defined() bool {
	return len(c.Factors) > 0 && c.Type != Reaction
}

// Combine returns one combined load per applied load, with the same type and
// positions and Magnitude set to Σ factor × termFactor × magnitude(case).
// A case absent from a load contributes zero.
//
// ok is false when the combination is undefined (no factors) or is a Reaction
// combination; loads is nil in that case. Combine is pure: repeated calls with
// the same inputs return bit-identical results.
func Combine(applied []model.Load, c LoadCombination) (loads []model.Load, ok bool) {
	if !c.Defined() {
		return nil, false
	}

	loads = make([]model.Load, len(applied))
	for i, l := range applied {
		_, nmag := l.Type.Arity()
		mag := make([]float64, nmag)
		for _, f := range c.Factors {
			force, found := forceOf(l, f.LoadCase)
			if !found {
				continue
			}
			mult := f.Multiplier()
			for k := 0; k < nmag && k < len(force.Magnitude); k++ {
				mag[k] += mult * force.Magnitude[k]
			}
		}
		loads[i] = model.Load{
			Type:      l.Type,
			Position:  append([]float64(nil), l.Position...),
			Magnitude: mag,
		}
	}
	return loads, true
}

// CaseLoads returns the loads of a single case with factor 1, one per applied
// load carrying that case
func CaseLoads(applied []model.Load, lc model.LoadCase) []model.Load {
	var out []model.Load
	for _, l := range applied {
		force, found := forceOf(l, lc)
		if !found {
			continue
		}
		out = append(out, model.Load{
			Type:      l.Type,
			Position:  append([]float64(nil), l.Position...),
			Magnitude: append([]float64(nil), force.Magnitude...),
		})
	}
	return out
}

// Cases returns the distinct load cases of the applied loads in first-seen order
func Cases(applied []model.Load) []model.LoadCase {
	var out []model.LoadCase
	seen := make(map[model.LoadCase]bool)
	for _, l := range applied {
		for _, f := range l.Forces {
			if !seen[f.Case] {
				seen[f.Case] = true
				out = append(out, f.Case)
			}
		}
	}
	return out
}

// IsZero reports whether every magnitude of every load is zero
func IsZero(loads []model.Load) bool {
	for _, l := range loads {
		for _, m := range l.Magnitude {
			if m != 0 {
				return false
			}
		}
	}
	return true
}

// forceOf returns the first force entry of l labelled lc
func forceOf(l model.Load, lc model.LoadCase) (model.Force, bool) {
	for _, f := range l.Forces {
		if f.Case == lc {
			return f, true
		}
	}
	return model.Force{}, false
}
