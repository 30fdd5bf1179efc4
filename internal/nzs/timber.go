package nzs

import (
	"math"

	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/model"
)

// NZS 3603 sawn timber constants
const (
	PhiTimber = 0.8 // strength reduction factor, bending and shear (Table 2.1)

	K1Permanent = 0.6 // dead load only
	K1Medium    = 0.8 // imposed floor, roof and snow loads
	K1Brief     = 1.0 // wind and earthquake

	K4Wet = 0.8 // bending and shear, moisture content above 25 %
)

// K1 returns the load duration factor for the shortest-acting case of a
// combination
func K1(c combination.LoadCombination) float64 {
	k1 := K1Permanent
	for _, f := range c.Factors {
		if f.Multiplier() == 0 {
			continue
		}
		switch f.LoadCase {
		case model.Wind, model.Earthquake:
			return K1Brief
		case model.Dead:
		default:
			k1 = K1Medium
		}
	}
	return k1
}

// K4 returns the moisture factor for "dry" or "wet" service
func K4(moisture string) float64 {
	if moisture == "wet" {
		return K4Wet
	}
	return 1
}

// k5 for discrete parallel systems by number of members (Table 2.5)
var k5Table = []float64{1.00, 1.00, 1.14, 1.20, 1.24, 1.26}

// K5 returns the parallel support factor for n members sharing the load
func K5(n int) float64 {
	if n <= 1 {
		return 1
	}
	if n >= len(k5Table) {
		return k5Table[len(k5Table)-1]
	}
	return k5Table[n]
}

// S1 returns the slenderness coefficient 1.25 (d/b) √(Lay/d) of a beam with
// compression edge restraint spacing lay
func S1(d, b, lay float64) float64 {
	return 1.25 * (d / b) * math.Sqrt(lay/d)
}

// K8 returns the stability factor for slenderness s1 (Clause 3.2.5)
func K8(s1 float64) float64 {
	switch {
	case s1 <= 10:
		return 1
	case s1 <= 20:
		return 1.5 - 0.05*s1
	case s1 <= 50:
		return 200 / (s1 * s1)
	}
	return 0
}
