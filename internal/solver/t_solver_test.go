package solver

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/alexiusacademia/gobeam/internal/model"
)

const (
	steelE = 200e9 // Pa
	testI  = 1e-4  // m⁴
)

func simplySupported(span float64, loads ...model.Load) model.BeamGeometry {
	return model.BeamGeometry{
		Span: span, E: steelE, I: testI, A: 0.01,
		Supports: []model.Support{
			{Position: 0, Fixity: model.Pinned},
			{Position: span, Fixity: model.Roller},
		},
		Loads: loads,
	}
}

func point(x, p float64) model.Load {
	return model.Load{Type: model.PointLoad, Position: []float64{x}, Magnitude: []float64{p}}
}

func udl(a, b, w float64) model.Load {
	return model.Load{Type: model.UDL, Position: []float64{a, b}, Magnitude: []float64{w}}
}

func trapezoid(a, b, wa, wb float64) model.Load {
	return model.Load{Type: model.TrapezoidalLoad, Position: []float64{a, b}, Magnitude: []float64{wa, wb}}
}

// checkEquilibrium verifies ΣFy = 0 and ΣM = 0 about the left end
func checkEquilibrium(tst *testing.T, g model.BeamGeometry, res *model.AnalysisResult, tol float64) {
	var fy, mz float64
	for pos, r := range res.Reactions {
		fy += r.Fy
		mz += r.Fy*pos + r.Mz
	}
	for _, l := range g.Loads {
		f, c := l.Resultant()
		fy -= f
		mz -= f * c
	}
	chk.Float64(tst, "ΣFy", tol, fy, 0)
	chk.Float64(tst, "ΣM", tol, mz, 0)
}

func Test_solver01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("solver01. simply supported beam with central point load")

	L, P := 6.0, 10e3
	g := simplySupported(L, point(L/2, P))
	res, err := Solve(g)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}

	chk.Float64(tst, "Ra", 1e-9, res.Reactions[0].Fy, P/2)
	chk.Float64(tst, "Rb", 1e-9, res.Reactions[L].Fy, P/2)
	chk.Float64(tst, "Mmax", 1e-8, res.MaxBending.Value, P*L/4)
	chk.Float64(tst, "x(Mmax)", 1e-12, res.MaxBending.X, L/2)
	chk.Float64(tst, "Vmax", 1e-9, math.Abs(res.MaxShear.Value), P/2)

	// δ = PL³/48EI at midspan, downward
	delta := P * L * L * L / (48 * steelE * testI)
	chk.Float64(tst, "δmax", 1e-12, res.MaxDeflection.Value, -delta)
	chk.Float64(tst, "x(δmax)", 1e-12, res.MaxDeflection.X, L/2)

	checkEquilibrium(tst, g, res, 1e-8)
}

func Test_solver02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("solver02. simply supported beam with full UDL")

	L, w := 6.0, 5e3
	g := simplySupported(L, udl(0, L, w))
	res, err := Solve(g)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}

	chk.Float64(tst, "Mmax", 1e-8, res.MaxBending.Value, w*L*L/8)
	chk.Float64(tst, "x(Mmax)", 1e-12, res.MaxBending.X, L/2)
	chk.Float64(tst, "Vmax", 1e-9, math.Abs(res.MaxShear.Value), w*L/2)

	// shear at both supports is wL/2 with opposite signs
	n := len(res.Shear)
	chk.Float64(tst, "V(0)", 1e-9, res.Shear[0], w*L/2)
	chk.Float64(tst, "V(L)", 1e-9, res.Shear[n-1], -w*L/2)
	chk.Float64(tst, "M(0)", 1e-9, res.Moment[0], 0)
	chk.Float64(tst, "M(L)", 1e-8, res.Moment[n-1], 0)

	// δ = 5wL⁴/384EI
	delta := 5 * w * math.Pow(L, 4) / (384 * steelE * testI)
	chk.Float64(tst, "δmax", 1e-12, res.MaxDeflection.Value, -delta)

	checkEquilibrium(tst, g, res, 1e-8)
}

func Test_solver03(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("solver03. cantilever with tip load")

	L, P := 3.0, 2e3
	g := model.BeamGeometry{
		Span: L, E: steelE, I: testI,
		Supports: []model.Support{{Position: 0, Fixity: model.Fixed}},
		Loads:    []model.Load{point(L, P)},
	}
	res, err := Solve(g)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}

	chk.Float64(tst, "|Mmax|", 1e-9, math.Abs(res.MaxBending.Value), P*L)
	chk.Float64(tst, "Mmax", 1e-9, res.MaxBending.Value, -P*L)
	chk.Float64(tst, "x(Mmax)", 1e-15, res.MaxBending.X, 0)
	chk.Float64(tst, "Fy", 1e-9, res.Reactions[0].Fy, P)
	chk.Float64(tst, "Mz", 1e-9, res.Reactions[0].Mz, P*L)

	// fixed end: no deflection, no rotation
	chk.Float64(tst, "δ(0)", 1e-15, res.Deflection[0], 0)
	h := res.X[1] - res.X[0]
	slope := (res.Deflection[1] - res.Deflection[0]) / h
	curvature := P * L / (steelE * testI)
	chk.Float64(tst, "θ(0)", curvature*h, slope, 0)

	// δ = PL³/3EI at the tip
	delta := P * L * L * L / (3 * steelE * testI)
	chk.Float64(tst, "δtip", 1e-12, res.Deflection[len(res.Deflection)-1], -delta)

	checkEquilibrium(tst, g, res, 1e-8)
}

func Test_solver04(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("solver04. propped cantilever with UDL")

	L, w := 5.0, 4e3
	g := model.BeamGeometry{
		Span: L, E: steelE, I: testI,
		Supports: []model.Support{
			{Position: 0, Fixity: model.Fixed},
			{Position: L, Fixity: model.Roller},
		},
		Loads: []model.Load{udl(0, L, w)},
	}
	res, err := Solve(g)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}

	chk.Float64(tst, "R fixed", 1e-7, res.Reactions[0].Fy, 5*w*L/8)
	chk.Float64(tst, "R roller", 1e-7, res.Reactions[L].Fy, 3*w*L/8)
	chk.Float64(tst, "M fixed", 1e-7, res.Reactions[0].Mz, w*L*L/8)
	chk.Float64(tst, "M(0)", 1e-7, res.Moment[0], -w*L*L/8)

	checkEquilibrium(tst, g, res, 1e-7)
}

func Test_solver05(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("solver05. two equal spans with UDL")

	L, w := 4.0, 3e3
	g := model.BeamGeometry{
		Span: 2 * L, E: steelE, I: testI,
		Supports: []model.Support{
			{Position: 0, Fixity: model.Pinned},
			{Position: L, Fixity: model.Roller},
			{Position: 2 * L, Fixity: model.Roller},
		},
		Loads: []model.Load{udl(0, 2*L, w)},
	}
	res, err := Solve(g)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}

	chk.Float64(tst, "R end", 1e-7, res.Reactions[0].Fy, 3*w*L/8)
	chk.Float64(tst, "R middle", 1e-7, res.Reactions[L].Fy, 10*w*L/8)
	chk.Float64(tst, "R other end", 1e-7, res.Reactions[2*L].Fy, 3*w*L/8)

	// hogging over the middle support governs
	chk.Float64(tst, "Mmax", 1e-7, res.MaxBending.Value, -w*L*L/8)
	chk.Float64(tst, "x(Mmax)", 1e-12, res.MaxBending.X, L)

	// both limits of the shear jump are sampled at the middle support
	var at []float64
	for i, x := range res.X {
		if x == L {
			at = append(at, res.Shear[i])
		}
	}
	chk.Int(tst, "samples at middle support", len(at), 2)
	if len(at) == 2 {
		chk.Float64(tst, "V left", 1e-7, at[0], -5*w*L/8)
		chk.Float64(tst, "V right", 1e-7, at[1], 5*w*L/8)
	}

	checkEquilibrium(tst, g, res, 1e-7)
}

func Test_solver06(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("solver06. equilibrium with mixed loads and fixities")

	g := model.BeamGeometry{
		Span: 10, E: 12e9, I: 2.5e-4,
		Supports: []model.Support{
			{Position: 0, Fixity: model.Pinned},
			{Position: 4, Fixity: model.Roller},
			{Position: 10, Fixity: model.Fixed},
		},
		Loads: []model.Load{
			udl(0, 10, 2e3),
			point(6, 5e3),
			trapezoid(2, 8, 1e3, 3e3),
			point(1.5, 800),
		},
	}
	res, err := Solve(g)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}
	checkEquilibrium(tst, g, res, 1e-6)

	// moment just left of the fixed end balances the reaction couple
	n := len(res.Moment)
	chk.Float64(tst, "M(L⁻)", 1e-6, res.Moment[n-1], res.Reactions[10].Mz)

	// no deflection at any support
	for i, x := range res.X {
		for _, s := range g.Supports {
			if x == s.Position {
				chk.Float64(tst, "δ at support", 1e-15, res.Deflection[i], 0)
			}
		}
	}

	// x is non-decreasing
	for i := 1; i < len(res.X); i++ {
		if res.X[i] < res.X[i-1] {
			tst.Errorf("x values decrease at %d: %g < %g\n", i, res.X[i], res.X[i-1])
			return
		}
	}
}

func Test_solver07(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("solver07. statics and stiffness reactions agree")

	g := simplySupported(7, trapezoid(1, 5, 2e3, 500), point(6, 1e3), udl(3, 7, 750))
	m := newMesh(g)
	sys := assemble(m, g)
	u, err := New().solve(sys)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	fe := reactions(m, sys, u, g)
	st := staticReactions(g)
	for _, pos := range []float64{0, 7} {
		chk.Float64(tst, "Fy", 1e-7, fe[pos].Fy, st[pos].Fy)
	}
}

func Test_solver08(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("solver08. unstable and invalid geometry")

	single := model.BeamGeometry{
		Span: 4, E: steelE, I: testI,
		Supports: []model.Support{{Position: 0, Fixity: model.Pinned}},
		Loads:    []model.Load{point(2, 1e3)},
	}
	_, err := Solve(single)
	if !errors.Is(err, model.ErrUnstable) {
		tst.Errorf("single pinned support: expected unstable error, got %v\n", err)
	}
	if !errors.Is(err, model.ErrInvalidGeometry) {
		tst.Errorf("unstable error should also be an invalid geometry error\n")
	}

	none := single
	none.Supports = nil
	if _, err := Solve(none); !errors.Is(err, model.ErrUnstable) {
		tst.Errorf("no supports: expected unstable error, got %v\n", err)
	}

	dup := simplySupported(4)
	dup.Supports = append(dup.Supports, model.Support{Position: 4, Fixity: model.Pinned})
	if _, err := Solve(dup); model.KindOf(err) != model.InvalidGeometry {
		tst.Errorf("duplicate supports: expected invalid geometry, got %v\n", err)
	}

	outside := simplySupported(4, point(5, 1e3))
	if _, err := Solve(outside); model.KindOf(err) != model.InvalidGeometry {
		tst.Errorf("load outside span: expected invalid geometry, got %v\n", err)
	}

	reversed := simplySupported(4, udl(3, 1, 1e3))
	if _, err := Solve(reversed); model.KindOf(err) != model.InvalidGeometry {
		tst.Errorf("reversed load: expected invalid geometry, got %v\n", err)
	}
}

func Test_solver09(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("solver09. repeated solves are bit-identical")

	g := model.BeamGeometry{
		Span: 9, E: 30e9, I: 5e-3,
		Supports: []model.Support{
			{Position: 0, Fixity: model.Fixed},
			{Position: 3, Fixity: model.Roller},
			{Position: 9, Fixity: model.Pinned},
		},
		Loads: []model.Load{udl(0, 9, 1e4), trapezoid(4, 8, 0, 6e3), point(1, 2e3)},
	}
	a, err := Solve(g)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}
	b, err := Solve(g)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}
	if !reflect.DeepEqual(a, b) {
		tst.Errorf("results differ between identical solves\n")
	}
}

func Test_solver10(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("solver10. overhang and point load on a support")

	// overhanging beam: supports at 0 and 4, tip load at 6
	L, P := 6.0, 3e3
	g := model.BeamGeometry{
		Span: L, E: steelE, I: testI,
		Supports: []model.Support{
			{Position: 0, Fixity: model.Pinned},
			{Position: 4, Fixity: model.Roller},
		},
		Loads: []model.Load{point(L, P), point(4, 1e3)},
	}
	res, err := Solve(g)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}
	chk.Float64(tst, "Ra", 1e-9, res.Reactions[0].Fy, -P*2/4)
	chk.Float64(tst, "Rb", 1e-9, res.Reactions[4].Fy, P*6/4+1e3)
	chk.Float64(tst, "Mmax", 1e-9, res.MaxBending.Value, -P*2)
	checkEquilibrium(tst, g, res, 1e-8)
}
