// Package nzs holds AS/NZS 1170.0 load combinations and NZS 3603 timber
// design factors.
package nzs

import (
	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/model"
)

// Combination factors ψ for imposed actions, AS/NZS 1170.0 Table 4.1
// (residential and office floors)
const (
	PsiShort    = 0.7 // ψs
	PsiLong     = 0.4 // ψl
	PsiCombined = 0.4 // ψc
)

func factor(lc model.LoadCase, f float64) combination.LoadCaseFactor {
	return combination.LoadCaseFactor{LoadCase: lc, Factor: f}
}

func psi(lc model.LoadCase, f, psi float64) combination.LoadCaseFactor {
	return combination.LoadCaseFactor{LoadCase: lc, Factor: f, TermFactor: combination.Term(psi)}
}

// LoadCombinations returns the AS/NZS 1170.0 Section 4 strength combinations
// followed by the short- and long-term serviceability combinations. ψ factors
// are carried as term factors.
func LoadCombinations() []combination.LoadCombination {
	uls := func(name, description string, f ...combination.LoadCaseFactor) combination.LoadCombination {
		return combination.LoadCombination{Name: name, Description: description, Type: combination.Ultimate, Factors: f}
	}
	sls := func(name, description string, f ...combination.LoadCaseFactor) combination.LoadCombination {
		return combination.LoadCombination{Name: name, Description: description, Type: combination.Serviceability, Factors: f}
	}

	return []combination.LoadCombination{
		uls("ULS-1", "1.35G",
			factor(model.Dead, 1.35)),
		uls("ULS-2", "1.2G + 1.5Q",
			factor(model.Dead, 1.2), factor(model.Live, 1.5)),
		uls("ULS-3", "1.2G + 1.5ψl Q",
			factor(model.Dead, 1.2), psi(model.Live, 1.5, PsiLong)),
		uls("ULS-4", "1.2G + ψc Q + Wu",
			factor(model.Dead, 1.2), psi(model.Live, 1, PsiCombined), factor(model.Wind, 1)),
		uls("ULS-5", "0.9G + Wu",
			factor(model.Dead, 0.9), factor(model.Wind, 1)),
		uls("ULS-6", "G + ψc Q + Eu",
			factor(model.Dead, 1), psi(model.Live, 1, PsiCombined), factor(model.Earthquake, 1)),
		uls("ULS-7", "1.2G + ψc Q + Su",
			factor(model.Dead, 1.2), psi(model.Live, 1, PsiCombined), factor(model.Snow, 1)),
		sls("SLS-1", "G + ψs Q",
			factor(model.Dead, 1), psi(model.Live, 1, PsiShort)),
		sls("SLS-2", "G + ψl Q",
			factor(model.Dead, 1), psi(model.Live, 1, PsiLong)),
	}
}
