package section

import (
	"math"
	"sort"
)

// Rectangle returns the counter-clockwise outline of a b × d rectangle with
// its bottom-left corner at the origin
func Rectangle(b, d float64) []Point {
	return []Point{{0, 0}, {b, 0}, {b, d}, {0, d}}
}

// Outline returns the polygon of the section
func (s *Section) Outline() []Point {
	if len(s.Vertices) > 0 {
		return s.Vertices
	}
	return Rectangle(s.Width, s.Depth)
}

// CalculateProperties computes geometric properties of the section
func (s *Section) CalculateProperties() *Properties {
	props := &Properties{}
	pts := s.Outline()
	if len(pts) < 3 {
		return props
	}

	props.MinX, props.MaxX = pts[0].X, pts[0].X
	props.MinY, props.MaxY = pts[0].Y, pts[0].Y
	for _, v := range pts {
		props.MinX = math.Min(props.MinX, v.X)
		props.MaxX = math.Max(props.MaxX, v.X)
		props.MinY = math.Min(props.MinY, v.Y)
		props.MaxY = math.Max(props.MaxY, v.Y)
	}
	props.Width = s.maxWidth(pts, props)
	props.Height = props.MaxY - props.MinY

	props.Area, props.CentroidX, props.CentroidY, props.Ix, props.Iy = polygonMoments(pts)

	if c := math.Max(props.MaxY-props.CentroidY, props.CentroidY-props.MinY); c > 0 {
		props.Zx = props.Ix / c
	}
	if c := math.Max(props.MaxX-props.CentroidX, props.CentroidX-props.MinX); c > 0 {
		props.Zy = props.Iy / c
	}

	s.calculateReinforcementProperties(props)
	return props
}

// polygonMoments applies the shoelace family of formulas: area, centroid and
// second moments about the centroidal axes. Orientation does not matter.
func polygonMoments(pts []Point) (area, cx, cy, ix, iy float64) {
	var a2, sx, sy, sxx, syy float64
	n := len(pts)
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]
		cross := p.X*q.Y - q.X*p.Y
		a2 += cross
		sx += (p.X + q.X) * cross
		sy += (p.Y + q.Y) * cross
		syy += (p.Y*p.Y + p.Y*q.Y + q.Y*q.Y) * cross
		sxx += (p.X*p.X + p.X*q.X + q.X*q.X) * cross
	}
	if a2 == 0 {
		return 0, 0, 0, 0, 0
	}

	signed := a2 / 2
	cx = sx / (6 * signed)
	cy = sy / (6 * signed)

	// about the origin, then shifted to the centroid
	ix = syy/12 - signed*cy*cy
	iy = sxx/12 - signed*cx*cx
	if signed < 0 {
		signed, ix, iy = -signed, -ix, -iy
	}
	return signed, cx, cy, ix, iy
}

// calculateReinforcementProperties calculates steel areas and effective depth
func (s *Section) calculateReinforcementProperties(props *Properties) {
	if len(s.Reinforcement) == 0 {
		props.EffectiveDepth = s.EffectiveDepth
		return
	}

	// mid-height splits tension from compression layers when no type is given
	midHeight := (props.MinY + props.MaxY) / 2

	var tensionArea, tensionMoment float64
	var compressionArea, compressionMoment float64

	for _, layer := range s.Reinforcement {
		if layer.Type == "compression" || (layer.Type == "" && layer.Y > midHeight) {
			compressionArea += layer.Area
			compressionMoment += layer.Area * layer.Y
		} else {
			tensionArea += layer.Area
			tensionMoment += layer.Area * layer.Y
		}
	}

	props.TotalTensionSteel = tensionArea
	props.TotalCompressionSteel = compressionArea

	if tensionArea > 0 {
		props.EffectiveDepth = props.MaxY - tensionMoment/tensionArea
	}
	if compressionArea > 0 {
		props.CompressionCover = props.MaxY - compressionMoment/compressionArea
	}

	if s.EffectiveDepth > 0 {
		props.EffectiveDepth = s.EffectiveDepth
	}
}

// maxWidth scans the outline at every vertex level and between levels
func (s *Section) maxWidth(pts []Point, props *Properties) float64 {
	if len(s.Vertices) == 0 {
		return s.Width
	}
	levels := make([]float64, 0, len(pts))
	for _, p := range pts {
		levels = append(levels, p.Y)
	}
	sort.Float64s(levels)

	var w float64
	for i := 0; i+1 < len(levels); i++ {
		if levels[i+1] == levels[i] {
			continue
		}
		// just inside each band so horizontal edges are not double counted
		for _, y := range []float64{levels[i] + 1e-9*props.Height, levels[i+1] - 1e-9*props.Height} {
			w = math.Max(w, s.widthAtY(y))
		}
	}
	return w
}

// WidthAtDepth calculates the width of the section at a given depth from top
func (s *Section) WidthAtDepth(depthFromTop float64) float64 {
	props := s.CalculateProperties()
	return s.widthAtY(props.MaxY - depthFromTop)
}

// widthAtY calculates the width at a specific Y coordinate
func (s *Section) widthAtY(y float64) float64 {
	intersections := s.findIntersectionsAtY(y)
	if len(intersections) < 2 {
		return 0
	}
	sort.Float64s(intersections)

	// total width is the sum of all segments
	var totalWidth float64
	for i := 0; i+1 < len(intersections); i += 2 {
		totalWidth += intersections[i+1] - intersections[i]
	}
	return totalWidth
}

// findIntersectionsAtY finds all X coordinates where a horizontal line at Y intersects the polygon
func (s *Section) findIntersectionsAtY(y float64) []float64 {
	var intersections []float64
	pts := s.Outline()
	n := len(pts)

	for i := 0; i < n; i++ {
		v1, v2 := pts[i], pts[(i+1)%n]
		if (v1.Y <= y && v2.Y > y) || (v2.Y <= y && v1.Y > y) {
			t := (y - v1.Y) / (v2.Y - v1.Y)
			intersections = append(intersections, v1.X+t*(v2.X-v1.X))
		}
	}
	return intersections
}
