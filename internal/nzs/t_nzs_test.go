package nzs

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/model"
)

func Test_nzs01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("nzs01. AS/NZS 1170.0 combinations")

	combos := LoadCombinations()
	chk.Int(tst, "number of combinations", len(combos), 9)

	var uls, sls int
	for _, c := range combos {
		if !c.Defined() {
			tst.Errorf("%s must be defined\n", c.Name)
		}
		switch c.Type {
		case combination.Ultimate:
			uls++
		case combination.Serviceability:
			sls++
		}
	}
	chk.Int(tst, "ULS", uls, 7)
	chk.Int(tst, "SLS", sls, 2)

	// G = 10, Q = 4
	actions := combination.Actions{model.Dead: 10, model.Live: 4}
	chk.Float64(tst, "ULS-2", 1e-12, combos[1].FactoredValue(actions), 1.2*10+1.5*4)
	chk.Float64(tst, "ULS-3", 1e-12, combos[2].FactoredValue(actions), 1.2*10+1.5*0.4*4)
	chk.Float64(tst, "SLS-1", 1e-12, combos[7].FactoredValue(actions), 10+0.7*4)
	chk.Float64(tst, "SLS-2", 1e-12, combos[8].FactoredValue(actions), 10+0.4*4)

	value, gov, ok := combination.Governing(actions, combos)
	if !ok || gov.Name != "ULS-2" {
		tst.Errorf("ULS-2 must govern for gravity loads, got %q\n", gov.Name)
	}
	chk.Float64(tst, "governing", 1e-12, value, 18)
}

func Test_nzs02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("nzs02. timber factors")

	combos := LoadCombinations()
	chk.Float64(tst, "k1 dead only", 1e-15, K1(combos[0]), K1Permanent)
	chk.Float64(tst, "k1 dead + live", 1e-15, K1(combos[1]), K1Medium)
	chk.Float64(tst, "k1 with wind", 1e-15, K1(combos[3]), K1Brief)
	chk.Float64(tst, "k1 with earthquake", 1e-15, K1(combos[5]), K1Brief)

	chk.Float64(tst, "k4 dry", 1e-15, K4("dry"), 1)
	chk.Float64(tst, "k4 wet", 1e-15, K4("wet"), K4Wet)

	chk.Float64(tst, "k5 single", 1e-15, K5(1), 1)
	chk.Float64(tst, "k5 three", 1e-15, K5(3), 1.20)
	chk.Float64(tst, "k5 many", 1e-15, K5(12), 1.26)

	// k8 is continuous at the slenderness breakpoints
	chk.Float64(tst, "k8(5)", 1e-12, K8(5), 1)
	chk.Float64(tst, "k8(10)", 1e-12, K8(10), 1)
	chk.Float64(tst, "k8(15)", 1e-12, K8(15), 0.75)
	chk.Float64(tst, "k8(20)", 1e-12, K8(20), 0.5)
	chk.Float64(tst, "k8(40)", 1e-12, K8(40), 0.125)
	chk.Float64(tst, "k8(60)", 1e-12, K8(60), 0)

	s1 := S1(0.29, 0.045, 2.4)
	chk.Float64(tst, "S1", 1e-12, s1, 1.25*(0.29/0.045)*math.Sqrt(2.4/0.29))
}
