package solver

import (
	"math"
	"sort"

	"github.com/alexiusacademia/gobeam/internal/model"
)

// node is a station of the beam idealization. Nodes are stored in an arena
// (mesh.nodes) and referenced by index.
type node struct {
	X       float64
	Support int     // index into geometry supports, -1 if none
	Point   float64 // sum of downward point loads acting at the node (N)
}

// element is the straight flexural segment between two consecutive nodes.
// Wa and Wb are the downward distributed intensities at its ends (N/m);
// every distributed load either covers an element completely or not at all.
type element struct {
	I, J   int
	Length float64
	Wa, Wb float64
}

type mesh struct {
	nodes []node
	elems []element
	tol   float64
}

// newMesh places a node at both beam ends, every support position and every
// load start/end position, then joins consecutive nodes with elements
func newMesh(g model.BeamGeometry) *mesh {
	tol := model.PositionTolerance * g.Span

	xs := []float64{0, g.Span}
	for _, s := range g.Supports {
		xs = append(xs, clamp(s.Position, 0, g.Span))
	}
	for _, l := range g.Loads {
		for _, p := range l.Position {
			xs = append(xs, clamp(p, 0, g.Span))
		}
	}
	sort.Float64s(xs)

	m := &mesh{tol: tol}
	for _, x := range xs {
		if n := len(m.nodes); n > 0 && x-m.nodes[n-1].X <= tol {
			continue
		}
		m.nodes = append(m.nodes, node{X: x, Support: -1})
	}
	// ends are exact
	m.nodes[0].X = 0
	m.nodes[len(m.nodes)-1].X = g.Span

	for k, s := range g.Supports {
		m.nodes[m.nodeAt(s.Position)].Support = k
	}

	for i := 0; i+1 < len(m.nodes); i++ {
		xa, xb := m.nodes[i].X, m.nodes[i+1].X
		e := element{I: i, J: i + 1, Length: xb - xa}
		for _, l := range g.Loads {
			if l.Type == model.PointLoad {
				continue
			}
			if l.Start() <= xa+tol && l.End() >= xb-tol {
				e.Wa += intensity(l, xa)
				e.Wb += intensity(l, xb)
			}
		}
		m.elems = append(m.elems, e)
	}

	for _, l := range g.Loads {
		if l.Type == model.PointLoad {
			m.nodes[m.nodeAt(l.Start())].Point += l.Magnitude[0]
		}
	}
	return m
}

// nodeAt returns the index of the node closest to x
func (m *mesh) nodeAt(x float64) int {
	i := sort.Search(len(m.nodes), func(k int) bool { return m.nodes[k].X >= x })
	switch {
	case i == len(m.nodes):
		return i - 1
	case i == 0:
		return 0
	}
	if x-m.nodes[i-1].X < m.nodes[i].X-x {
		return i - 1
	}
	return i
}

// ndof returns the number of degrees of freedom (v and θ per node)
func (m *mesh) ndof() int { return 2 * len(m.nodes) }

// intensity evaluates the linear intensity function of a distributed load at
// x without clipping to its interval
func intensity(l model.Load, x float64) float64 {
	if l.Type == model.UDL {
		return l.Magnitude[0]
	}
	a, b := l.Start(), l.End()
	return l.Magnitude[0] + (l.Magnitude[1]-l.Magnitude[0])*(x-a)/(b-a)
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
