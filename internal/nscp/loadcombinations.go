package nscp

import (
	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/model"
)

// term builds one load case factor
func term(lc model.LoadCase, factor float64) combination.LoadCaseFactor {
	return combination.LoadCaseFactor{LoadCase: lc, Factor: factor}
}

func ultimate(name, description string, factors ...combination.LoadCaseFactor) combination.LoadCombination {
	return combination.LoadCombination{
		Name:        name,
		Description: description,
		Type:        combination.Ultimate,
		Factors:     factors,
	}
}

// LoadCombinations returns the NSCP 2015 Section 203.3.1 basic load
// combinations using strength design. "Lr or R" is applied to both cases;
// a beam normally carries only one of them.
func LoadCombinations() []combination.LoadCombination {
	return []combination.LoadCombination{
		ultimate("NSCP-1", "1.4D",
			term(model.Dead, 1.4)),
		ultimate("NSCP-2", "1.2D + 1.6L + 0.5(Lr or R)",
			term(model.Dead, 1.2), term(model.Live, 1.6), term(model.RoofLive, 0.5), term(model.Rain, 0.5)),
		ultimate("NSCP-3", "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
			term(model.Dead, 1.2), term(model.RoofLive, 1.6), term(model.Rain, 1.6), term(model.Live, 1.0), term(model.Wind, 0.5)),
		ultimate("NSCP-4", "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
			term(model.Dead, 1.2), term(model.Wind, 1.0), term(model.Live, 1.0), term(model.RoofLive, 0.5), term(model.Rain, 0.5)),
		ultimate("NSCP-5", "1.2D + 1.0E + 1.0L",
			term(model.Dead, 1.2), term(model.Earthquake, 1.0), term(model.Live, 1.0)),
		ultimate("NSCP-6", "0.9D + 1.0W",
			term(model.Dead, 0.9), term(model.Wind, 1.0)),
		ultimate("NSCP-7", "0.9D + 1.0E",
			term(model.Dead, 0.9), term(model.Earthquake, 1.0)),
	}
}

// SimplifiedCombinations are the gravity combinations most used for beams
func SimplifiedCombinations() []combination.LoadCombination {
	return []combination.LoadCombination{
		ultimate("NSCP-1", "1.4D",
			term(model.Dead, 1.4)),
		ultimate("NSCP-2", "1.2D + 1.6L",
			term(model.Dead, 1.2), term(model.Live, 1.6)),
	}
}
