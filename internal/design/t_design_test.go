package design

import (
	"context"
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/model"
)

// fixedRules returns the same capacity for every input
type fixedRules struct {
	bending, shear float64
	err            error
}

func (r fixedRules) Name() string { return "fixed" }

func (r fixedRules) Capacity(in CapacityInput) (Capacity, error) {
	if r.err != nil {
		return Capacity{}, r.err
	}
	return Capacity{Bending: r.bending, Shear: r.shear, Factors: map[string]float64{"phi": 1}}, nil
}

// simple span 4 m, dead UDL 10 kN/m: M = wL²/8 = 20 kN·m, V = wL/2 = 20 kN
func simpleBeam() (model.BeamGeometry, []model.Load) {
	g := model.BeamGeometry{
		Span: 4, E: 200e9, I: 1e-4, A: 1e-2,
		Supports: []model.Support{
			{Position: 0, Fixity: model.Pinned},
			{Position: 4, Fixity: model.Roller},
		},
	}
	applied := []model.Load{
		{
			Type: model.UDL, Position: []float64{0, 4},
			Forces: []model.Force{
				{Case: model.Dead, Magnitude: []float64{10e3}},
				{Case: model.Live, Magnitude: []float64{5e3}},
			},
		},
	}
	return g, applied
}

func deadOnly(factor float64) combination.LoadCombination {
	return combination.LoadCombination{
		Name: "G", Type: combination.Ultimate,
		Factors: []combination.LoadCaseFactor{{LoadCase: model.Dead, Factor: factor}},
	}
}

func Test_design01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("design01. utilization exactly 1.0 passes")

	g, applied := simpleBeam()
	c := NewChecker(fixedRules{bending: 20e3, shear: 40e3})
	res, err := c.CheckCombination(g, applied, deadOnly(1), &SectionProperties{Name: "test"}, DesignParameters{})
	if err != nil {
		tst.Errorf("check failed: %v\n", err)
		return
	}
	chk.Float64(tst, "bending utilization", 1e-9, res.CapacityData.Utilization.Bending, 1)
	chk.Float64(tst, "shear utilization", 1e-9, res.CapacityData.Utilization.Shear, 0.5)
	chk.Float64(tst, "max utilization", 1e-9, res.MaxUtilization(), 1)
	chk.Float64(tst, "bending capacity", 1e-15, res.BendingCapacity, 20e3)
	if res.CapacityData.Status != Pass {
		tst.Errorf("utilization 1.0 must pass, got %s\n", res.CapacityData.Status)
	}
	if res.CombinationName != "G" {
		tst.Errorf("wrong combination name %q\n", res.CombinationName)
	}
	chk.Float64(tst, "max bending", 1e-6, res.MaxBending.Value, 20e3)
	chk.Float64(tst, "max bending at", 1e-12, res.MaxBending.X, 2)
}

func Test_design02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("design02. utilization above tolerance fails")

	g, applied := simpleBeam()
	c := NewChecker(fixedRules{bending: 20e3 * (1 - 1e-4), shear: 40e3})
	res, err := c.CheckCombination(g, applied, deadOnly(1), &SectionProperties{}, DesignParameters{})
	if err != nil {
		tst.Errorf("check failed: %v\n", err)
		return
	}
	if res.CapacityData.Status != Fail {
		tst.Errorf("utilization %g must fail\n", res.MaxUtilization())
	}

	// shear alone can fail the member
	c = NewChecker(fixedRules{bending: 1e9, shear: 10e3})
	res, err = c.CheckCombination(g, applied, deadOnly(1), &SectionProperties{}, DesignParameters{})
	if err != nil {
		tst.Errorf("check failed: %v\n", err)
		return
	}
	chk.Float64(tst, "shear utilization", 1e-9, res.CapacityData.Utilization.Shear, 2)
	if res.CapacityData.Status != Fail {
		tst.Errorf("shear utilization 2 must fail\n")
	}
}

func Test_design03(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("design03. preconditions and errors")

	g, applied := simpleBeam()
	c := NewChecker(fixedRules{bending: 1, shear: 1})

	_, err := c.CheckCombination(g, applied, deadOnly(1), nil, DesignParameters{})
	if !errors.Is(err, model.ErrUnresolvedSection) {
		tst.Errorf("nil section must be UnresolvedSection, got %v\n", err)
	}

	_, err = c.CheckCombination(g, applied, combination.LoadCombination{Name: "empty"}, &SectionProperties{}, DesignParameters{})
	if !errors.Is(err, model.ErrUndefinedCombination) {
		tst.Errorf("combination without factors must be UndefinedCombination, got %v\n", err)
	}

	snow := combination.LoadCombination{
		Name: "S", Type: combination.Ultimate,
		Factors: []combination.LoadCaseFactor{{LoadCase: model.Snow, Factor: 1}},
	}
	_, err = c.CheckCombination(g, applied, snow, &SectionProperties{}, DesignParameters{})
	if !errors.Is(err, model.ErrUndefinedCombination) {
		tst.Errorf("zero-load combination must be UndefinedCombination, got %v\n", err)
	}

	c = NewChecker(fixedRules{bending: 0, shear: 1})
	if _, err = c.CheckCombination(g, applied, deadOnly(1), &SectionProperties{}, DesignParameters{}); err == nil {
		tst.Errorf("zero capacity must be rejected\n")
	}

	boom := errors.New("boom")
	c = NewChecker(fixedRules{err: boom})
	if _, err = c.CheckCombination(g, applied, deadOnly(1), &SectionProperties{}, DesignParameters{}); !errors.Is(err, boom) {
		tst.Errorf("rules error must be wrapped, got %v\n", err)
	}

	unstable := g
	unstable.Supports = []model.Support{{Position: 0, Fixity: model.Pinned}}
	c = NewChecker(fixedRules{bending: 1, shear: 1})
	if _, err = c.CheckCombination(unstable, applied, deadOnly(1), &SectionProperties{}, DesignParameters{}); !errors.Is(err, model.ErrUnstable) {
		tst.Errorf("single pinned support must be unstable, got %v\n", err)
	}
}

func Test_design04(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("design04. batch check and governing combination")

	g, applied := simpleBeam()
	combos := []combination.LoadCombination{
		deadOnly(1.4),
		{
			Name: "1.2G + 1.6Q", Type: combination.Ultimate,
			Factors: []combination.LoadCaseFactor{
				{LoadCase: model.Dead, Factor: 1.2},
				{LoadCase: model.Live, Factor: 1.6},
			},
		},
		{Name: "empty", Type: combination.Ultimate},
		{
			Name: "S", Type: combination.Ultimate,
			Factors: []combination.LoadCaseFactor{{LoadCase: model.Snow, Factor: 1}},
		},
		{
			Name: "R", Type: combination.Reaction, Support: 4,
			Factors: []combination.LoadCaseFactor{{LoadCase: model.Dead, Factor: 1}},
		},
	}

	c := NewChecker(fixedRules{bending: 40e3, shear: 40e3})
	c.Workers = 2
	outcomes, err := c.CheckAll(context.Background(), g, applied, combos, &SectionProperties{}, DesignParameters{})
	if err != nil {
		tst.Errorf("check all failed: %v\n", err)
		return
	}
	chk.Int(tst, "number of outcomes", len(outcomes), len(combos))

	for i, o := range outcomes {
		if o.Combination.Name != combos[i].Name {
			tst.Errorf("outcome %d out of order: %q\n", i, o.Combination.Name)
		}
	}
	if !outcomes[2].Skipped || !outcomes[3].Skipped {
		tst.Errorf("undefined and zero-load combinations must be skipped\n")
	}
	if outcomes[4].Reaction == nil || outcomes[4].Result != nil {
		tst.Errorf("reaction combination must only carry a reaction\n")
		return
	}
	chk.Float64(tst, "reaction", 1e-6, outcomes[4].Reaction.Fy, 20e3)

	// M(1) = 1.4·20 = 28 kN·m, M(2) = 1.2·20 + 1.6·10 = 40 kN·m
	gov, ok := Governing(outcomes)
	if !ok {
		tst.Errorf("a governing combination exists\n")
		return
	}
	if gov.Combination.Name != "1.2G + 1.6Q" {
		tst.Errorf("wrong governing combination %q\n", gov.Combination.Name)
	}
	chk.Float64(tst, "governing utilization", 1e-9, gov.Result.MaxUtilization(), 1)
	chk.Int(tst, "governing index", GoverningIndex(outcomes), 1)

	// same name twice: only the higher one governs
	twins := []combination.LoadCombination{deadOnly(1.2), deadOnly(1.4)}
	tw, err := c.CheckAll(context.Background(), g, applied, twins, &SectionProperties{}, DesignParameters{})
	if err != nil {
		tst.Errorf("check all failed: %v\n", err)
		return
	}
	chk.Int(tst, "governing twin", GoverningIndex(tw), 1)
	chk.Float64(tst, "other utilization", 1e-9, outcomes[0].Result.MaxUtilization(), 28.0/40.0)
	if !Passed(outcomes) {
		tst.Errorf("all checked combinations pass\n")
	}
}

func Test_design05(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("design05. failures stay in their outcome")

	g, applied := simpleBeam()
	combos := []combination.LoadCombination{
		deadOnly(1),
		{
			Name: "R", Type: combination.Reaction, Support: 2.5,
			Factors: []combination.LoadCaseFactor{{LoadCase: model.Dead, Factor: 1}},
		},
		deadOnly(3),
	}
	c := NewChecker(fixedRules{bending: 30e3, shear: 100e3})
	outcomes, err := c.CheckAll(context.Background(), g, applied, combos, &SectionProperties{}, DesignParameters{})
	if err != nil {
		tst.Errorf("check all failed: %v\n", err)
		return
	}
	if outcomes[1].Err == nil {
		tst.Errorf("reaction at a point without support must fail\n")
	}
	if outcomes[0].Result == nil || outcomes[2].Result == nil {
		tst.Errorf("sibling combinations must still be checked\n")
		return
	}
	if outcomes[2].Result.CapacityData.Status != Fail {
		tst.Errorf("3G gives utilization 2 and must fail\n")
	}
	if Passed(outcomes) {
		tst.Errorf("batch with failures must not pass\n")
	}

	if _, err = c.CheckAll(context.Background(), g, applied, combos, nil, DesignParameters{}); !errors.Is(err, model.ErrUnresolvedSection) {
		tst.Errorf("nil section must be UnresolvedSection, got %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err = c.CheckAll(ctx, g, applied, combos, &SectionProperties{}, DesignParameters{}); !errors.Is(err, context.Canceled) {
		tst.Errorf("cancelled context must be reported, got %v\n", err)
	}
}

func Test_design06(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("design06. reaction combination on a cantilever")

	g := model.BeamGeometry{
		Span: 3, E: 200e9, I: 1e-4,
		Supports: []model.Support{{Position: 0, Fixity: model.Fixed}},
	}
	applied := []model.Load{
		{
			Type: model.PointLoad, Position: []float64{3},
			Forces: []model.Force{
				{Case: model.Dead, Magnitude: []float64{2e3}},
				{Case: model.Live, Magnitude: []float64{4e3}},
			},
		},
	}
	combo := combination.LoadCombination{
		Name: "R0", Type: combination.Reaction, Support: 0,
		Factors: []combination.LoadCaseFactor{
			{LoadCase: model.Dead, Factor: 1.2},
			{LoadCase: model.Live, Factor: 1.5},
		},
	}
	rc, err := NewChecker(nil).ReactionFor(g, applied, combo)
	if err != nil {
		tst.Errorf("reaction failed: %v\n", err)
		return
	}
	P := 1.2*2e3 + 1.5*4e3
	chk.Float64(tst, "Fy", 1e-6, rc.Fy, P)
	chk.Float64(tst, "Mz", 1e-6, rc.Mz, P*3)

	if _, err = NewChecker(nil).ReactionFor(g, applied, combination.LoadCombination{Type: combination.Reaction}); !errors.Is(err, model.ErrUndefinedCombination) {
		tst.Errorf("reaction combination without factors must be undefined, got %v\n", err)
	}
}

func Test_design07(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("design07. nothing checked never passes")

	g, _ := simpleBeam()
	zero := []model.Load{
		{
			Type: model.UDL, Position: []float64{0, 4},
			Forces: []model.Force{{Case: model.Dead, Magnitude: []float64{0}}},
		},
	}
	combos := []combination.LoadCombination{
		deadOnly(1.4),
		{Name: "empty", Type: combination.Ultimate},
	}
	outcomes, err := NewChecker(fixedRules{bending: 1, shear: 1}).CheckAll(context.Background(), g, zero, combos, &SectionProperties{}, DesignParameters{})
	if err != nil {
		tst.Errorf("check all failed: %v\n", err)
		return
	}
	for _, o := range outcomes {
		if !o.Skipped || o.Result != nil {
			tst.Errorf("%q must be skipped\n", o.Combination.Name)
		}
	}
	if _, ok := Governing(outcomes); ok {
		tst.Errorf("no combination may govern\n")
	}
	chk.Int(tst, "governing index", GoverningIndex(outcomes), -1)
	if Passed(outcomes) {
		tst.Errorf("a batch with nothing checked must not pass\n")
	}
	if Passed(nil) {
		tst.Errorf("an empty batch must not pass\n")
	}

	// reactions alone are not a design check
	reaction := []combination.LoadCombination{{
		Name: "R", Type: combination.Reaction, Support: 0,
		Factors: []combination.LoadCaseFactor{{LoadCase: model.Dead, Factor: 1}},
	}}
	g, applied := simpleBeam()
	outcomes, err = NewChecker(nil).CheckAll(context.Background(), g, applied, reaction, &SectionProperties{}, DesignParameters{})
	if err != nil {
		tst.Errorf("check all failed: %v\n", err)
		return
	}
	if outcomes[0].Reaction == nil {
		tst.Errorf("reaction must be resolved\n")
	}
	if Passed(outcomes) {
		tst.Errorf("reaction outcomes alone must not pass\n")
	}
}

func Test_design08(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("design08. reaction support matched within the span tolerance")

	g := model.BeamGeometry{
		Span: 10, E: 200e9, I: 1e-4,
		Supports: []model.Support{
			{Position: 0, Fixity: model.Pinned},
			{Position: 5, Fixity: model.Roller},
			{Position: 10, Fixity: model.Roller},
		},
	}
	applied := []model.Load{{
		Type: model.UDL, Position: []float64{0, 10},
		Forces: []model.Force{{Case: model.Dead, Magnitude: []float64{1e3}}},
	}}
	c := NewChecker(nil)

	// two equal spans: middle reaction 10wL/8 with L = 5 m
	for _, x := range []float64{5, 5.000000009} {
		combo := combination.LoadCombination{
			Name: "R-mid", Type: combination.Reaction, Support: x,
			Factors: []combination.LoadCaseFactor{{LoadCase: model.Dead, Factor: 1}},
		}
		rc, err := c.ReactionFor(g, applied, combo)
		if err != nil {
			tst.Errorf("reaction at %g failed: %v\n", x, err)
			continue
		}
		chk.Float64(tst, "middle reaction", 1e-6, rc.Fy, 6250)
	}

	far := combination.LoadCombination{
		Name: "R-off", Type: combination.Reaction, Support: 5.001,
		Factors: []combination.LoadCaseFactor{{LoadCase: model.Dead, Factor: 1}},
	}
	if _, err := c.ReactionFor(g, applied, far); !errors.Is(err, model.ErrInvalidGeometry) {
		tst.Errorf("no support at 5.001 must be InvalidGeometry, got %v\n", err)
	}
}
