package solver

import "github.com/alexiusacademia/gobeam/internal/model"

// action is a concentrated force (upward positive) and couple
// (counter-clockwise positive) acting at X
type action struct {
	X  float64
	Fy float64
	Mz float64
}

// cut evaluates internal actions by summing everything left of a section
type cut struct {
	actions     []action
	distributed []model.Load
	tol         float64
}

func newCut(g model.BeamGeometry, react map[float64]model.Reaction, tol float64) *cut {
	c := &cut{tol: tol}
	for _, s := range g.Supports {
		r := react[s.Position]
		c.actions = append(c.actions, action{X: s.Position, Fy: r.Fy, Mz: r.Mz})
	}
	for _, l := range g.Loads {
		if l.Type == model.PointLoad {
			c.actions = append(c.actions, action{X: l.Start(), Fy: -l.Magnitude[0]})
			continue
		}
		c.distributed = append(c.distributed, l)
	}
	return c
}

// at returns shear and moment at x. With right set, concentrated actions
// located at x are included (right-hand limit).
func (c *cut) at(x float64, right bool) (shear, moment float64) {
	for _, a := range c.actions {
		left := a.X < x-c.tol
		if right {
			left = a.X <= x+c.tol
		}
		if !left {
			continue
		}
		shear += a.Fy
		moment += a.Fy*(x-a.X) - a.Mz
	}
	for _, l := range c.distributed {
		f, m := distributedLeftOf(l, x)
		shear -= f
		moment -= m
	}
	return shear, moment
}

// distributedLeftOf returns the part of a linearly varying load lying left of
// x: its resultant and its moment about x
func distributedLeftOf(l model.Load, x float64) (force, moment float64) {
	a := l.Start()
	u := l.End()
	if x < u {
		u = x
	}
	if u <= a {
		return 0, 0
	}
	wa := intensity(l, a)
	k := (intensity(l, l.End()) - wa) / (l.End() - a)
	t, d := u-a, x-a
	force = wa*t + k*t*t/2
	moment = wa*(d*t-t*t/2) + k*(d*t*t/2-t*t*t/3)
	return force, moment
}

// sample builds the diagrams. Every node is an exact sample; nodes carrying
// a support or point load are sampled twice (left and right limits).
func (s *Solver) sample(m *mesh, g model.BeamGeometry, c *cut, u []float64) *model.AnalysisResult {
	res := &model.AnalysisResult{}
	ei := g.EI()
	last := len(m.nodes) - 1

	push := func(x, v, mo, d float64) {
		res.X = append(res.X, x)
		res.Shear = append(res.Shear, v)
		res.Moment = append(res.Moment, mo)
		res.Deflection = append(res.Deflection, d)
		res.Axial = append(res.Axial, 0)
	}

	for i, nd := range m.nodes {
		jump := nd.Support >= 0 || nd.Point != 0
		if i > 0 && (jump || i == last) {
			v, mo := c.at(nd.X, false)
			push(nd.X, v, mo, u[2*i])
		}
		if i < last && (jump || i == 0) {
			v, mo := c.at(nd.X, true)
			push(nd.X, v, mo, u[2*i])
		}
		if !jump && i > 0 && i < last {
			v, mo := c.at(nd.X, true)
			push(nd.X, v, mo, u[2*i])
		}
		if i == last {
			break
		}

		// interior stations: integrate M/EI from the left node
		e := m.elems[i]
		v0, m0 := c.at(nd.X, true)
		d0, r0 := u[2*i], u[2*i+1]
		wa := e.Wa
		k := (e.Wb - e.Wa) / e.Length
		for j := 1; j < s.Subdivisions; j++ {
			xi := e.Length * float64(j) / float64(s.Subdivisions)
			xi2 := xi * xi
			v := v0 - wa*xi - k*xi2/2
			mo := m0 + v0*xi - wa*xi2/2 - k*xi2*xi/6
			d := d0 + r0*xi + (m0*xi2/2+v0*xi2*xi/6-wa*xi2*xi2/24-k*xi2*xi2*xi/120)/ei
			push(nd.X+xi, v, mo, d)
		}
	}

	res.MaxShear = model.FindExtremum(res.X, res.Shear)
	res.MaxBending = model.FindExtremum(res.X, res.Moment)
	res.MaxDeflection = model.FindExtremum(res.X, res.Deflection)
	return res
}
