package combination

import (
	"math"

	"github.com/alexiusacademia/gobeam/internal/model"
)

// Actions holds unfactored scalar actions (moment, shear, reaction) per load case
type Actions map[model.LoadCase]float64

// FactoredValue combines scalar actions with the combination factors
func (c LoadCombination) FactoredValue(actions Actions) float64 {
	var sum float64
	for _, f := range c.Factors {
		sum += f.Multiplier() * actions[f.LoadCase]
	}
	return sum
}

// Governing finds the combination giving the largest factored action by
// absolute value. Undefined and Reaction combinations are ignored; ok is
// false when none is left.
func Governing(actions Actions, combinations []LoadCombination) (value float64, governing LoadCombination, ok bool) {
	best := -1.0
	for _, c := range combinations {
		if !c.Defined() {
			continue
		}
		v := c.FactoredValue(actions)
		if math.Abs(v) > best {
			best = math.Abs(v)
			value, governing, ok = v, c, true
		}
	}
	return value, governing, ok
}
