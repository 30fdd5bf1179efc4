package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gobeam/internal/model"
)

// system is the assembled stiffness problem K·u = F.
// DOFs are ordered (v0, θ0, v1, θ1, ...); v is upward, θ counter-clockwise.
type system struct {
	K          *mat.SymDense
	F          []float64
	restrained []bool
}

// assemble builds the global stiffness matrix and the equivalent nodal load vector
func assemble(m *mesh, g model.BeamGeometry) *system {
	n := m.ndof()
	sys := &system{
		K:          mat.NewSymDense(n, nil),
		F:          make([]float64, n),
		restrained: make([]bool, n),
	}
	ei := g.EI()

	for _, e := range m.elems {
		l := e.Length
		ll := l * l
		c := ei / (ll * l)

		// Euler-Bernoulli bending stiffness
		ke := [4][4]float64{
			{12 * c, 6 * l * c, -12 * c, 6 * l * c},
			{6 * l * c, 4 * ll * c, -6 * l * c, 2 * ll * c},
			{-12 * c, -6 * l * c, 12 * c, -6 * l * c},
			{6 * l * c, 2 * ll * c, -6 * l * c, 4 * ll * c},
		}
		dofs := [4]int{2 * e.I, 2*e.I + 1, 2 * e.J, 2*e.J + 1}
		for a := 0; a < 4; a++ {
			for b := a; b < 4; b++ {
				ra, rb := dofs[a], dofs[b]
				sys.K.SetSym(ra, rb, sys.K.At(ra, rb)+ke[a][b])
			}
		}

		// fixed-end-force equivalents of a linearly varying load;
		// upward intensity is the negated downward magnitude
		qa, qb := -e.Wa, -e.Wb
		sys.F[dofs[0]] += l * (7*qa + 3*qb) / 20
		sys.F[dofs[1]] += ll * (3*qa + 2*qb) / 60
		sys.F[dofs[2]] += l * (3*qa + 7*qb) / 20
		sys.F[dofs[3]] -= ll * (2*qa + 3*qb) / 60
	}

	for i, nd := range m.nodes {
		sys.F[2*i] -= nd.Point
		if nd.Support < 0 {
			continue
		}
		sys.restrained[2*i] = true
		if g.Supports[nd.Support].Fixity.RestrainsRotation() {
			sys.restrained[2*i+1] = true
		}
	}
	return sys
}

// solve returns the nodal displacements. The free block of K is factorized
// with a Cholesky decomposition: a stable beam gives a positive definite matrix.
func (s *Solver) solve(sys *system) ([]float64, error) {
	const op = "solve"

	n := len(sys.F)
	free := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !sys.restrained[i] {
			free = append(free, i)
		}
	}
	u := make([]float64, n)
	if len(free) == 0 {
		return u, nil
	}

	kff := mat.NewSymDense(len(free), nil)
	ff := mat.NewVecDense(len(free), nil)
	for a, ga := range free {
		ff.SetVec(a, sys.F[ga])
		for b := a; b < len(free); b++ {
			kff.SetSym(a, b, sys.K.At(ga, free[b]))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(kff); !ok {
		return nil, model.Errorf(model.Unstable, op, "stiffness matrix is singular; supports do not prevent rigid-body motion")
	}
	if cond := chol.Cond(); math.IsInf(cond, 0) || math.IsNaN(cond) || cond > s.MaxCondition {
		return nil, model.Errorf(model.NumericalInstability, op, "stiffness matrix condition number %.3g exceeds %.3g", cond, s.MaxCondition)
	}

	var uf mat.VecDense
	if err := chol.SolveVecTo(&uf, ff); err != nil {
		return nil, &model.Error{Kind: model.NumericalInstability, Op: op, Msg: "back substitution failed", Err: err}
	}
	for a, ga := range free {
		u[ga] = uf.AtVec(a)
	}
	for _, v := range u {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, model.Errorf(model.NumericalInstability, op, "non-finite displacement")
		}
	}
	return u, nil
}

// reactions back-substitutes R = K·u − F at the restrained DOFs
func reactions(m *mesh, sys *system, u []float64, g model.BeamGeometry) map[float64]model.Reaction {
	out := make(map[float64]model.Reaction, len(g.Supports))
	n := len(u)
	for i, nd := range m.nodes {
		if nd.Support < 0 {
			continue
		}
		var r model.Reaction
		for _, dof := range []int{2 * i, 2*i + 1} {
			if !sys.restrained[dof] {
				continue
			}
			var sum float64
			for j := 0; j < n; j++ {
				sum += sys.K.At(dof, j) * u[j]
			}
			if dof%2 == 0 {
				r.Fy = sum - sys.F[dof]
			} else {
				r.Mz = sum - sys.F[dof]
			}
		}
		out[g.Supports[nd.Support].Position] = r
	}
	return out
}
