// Package coderules holds design.CodeRules implementations for supported
// design standards and a registry to look them up by name.
package coderules

import (
	"fmt"

	"github.com/alexiusacademia/gobeam/internal/design"
	"github.com/alexiusacademia/gobeam/internal/nzs"
)

// Timber is NZS 3603 sawn timber in bending and shear:
//
//	φMn = φ k1 k4 k5 k8 fb Z
//	φVn = φ k1 k4 k5 fs (2/3) A
//
// Factors given in DesignParameters.K take precedence over derived ones.
type Timber struct{}

// Name implements design.CodeRules
func (Timber) Name() string { return "nzs3603" }

// Capacity implements design.CodeRules
func (Timber) Capacity(in design.CapacityInput) (design.Capacity, error) {
	s, p := in.Section, in.Params

	fb, ok := s.Strength("fb")
	if !ok || fb <= 0 {
		return design.Capacity{}, fmt.Errorf("section %q: bending strength fb is required", s.Name)
	}
	fs, ok := s.Strength("fs")
	if !ok || fs <= 0 {
		return design.Capacity{}, fmt.Errorf("section %q: shear strength fs is required", s.Name)
	}
	if s.Zx <= 0 || s.A <= 0 {
		return design.Capacity{}, fmt.Errorf("section %q: Zx and A must be positive", s.Name)
	}

	phi := p.Phi
	if phi <= 0 {
		phi = nzs.PhiTimber
	}
	k1 := factor(p, "k1", func() float64 { return nzs.K1(in.Combination) })
	k4 := factor(p, "k4", func() float64 { return nzs.K4(p.Moisture) })
	k5 := factor(p, "k5", func() float64 { return nzs.K5(p.MemberCount) })

	var s1 float64
	k8 := factor(p, "k8", func() float64 {
		if p.RestraintSpacing <= 0 || s.B <= 0 || s.D <= 0 {
			return 1 // continuously restrained compression edge
		}
		s1 = nzs.S1(s.D, s.B, p.RestraintSpacing)
		return nzs.K8(s1)
	})
	if k8 <= 0 {
		return design.Capacity{}, fmt.Errorf("section %q: slenderness S1 = %.1f exceeds 50", s.Name, s1)
	}

	c := design.Capacity{
		Bending: phi * k1 * k4 * k5 * k8 * fb * s.Zx,
		Shear:   phi * k1 * k4 * k5 * fs * (2.0 / 3.0) * s.A,
		Factors: map[string]float64{
			"phi": phi,
			"k1":  k1,
			"k4":  k4,
			"k5":  k5,
			"k8":  k8,
		},
	}
	if s1 > 0 {
		c.Factors["S1"] = s1
	}
	return c, nil
}

// factor returns the supplied k-factor or derives it
func factor(p design.DesignParameters, name string, derive func() float64) float64 {
	if v, ok := p.K[name]; ok {
		return v
	}
	return derive()
}
