package coderules

import (
	"fmt"

	"github.com/alexiusacademia/gobeam/internal/design"
	"github.com/alexiusacademia/gobeam/internal/rc"
)

// Concrete is NSCP 2015 reinforced concrete for rectangular beams: bending
// from strain compatibility of the singly or doubly reinforced section and
// shear from the concrete contribution φVc.
type Concrete struct{}

// Name implements design.CodeRules
func (Concrete) Name() string { return "nscp2015" }

// Capacity implements design.CodeRules
func (Concrete) Capacity(in design.CapacityInput) (design.Capacity, error) {
	s := in.Section
	b, err := Beam(s)
	if err != nil {
		return design.Capacity{}, err
	}

	fl, err := b.Flexure(s.Rebar.As*1e6, s.Rebar.AsComp*1e6)
	if err != nil {
		return design.Capacity{}, fmt.Errorf("section %q: %w", s.Name, err)
	}
	vc, phiVc, err := b.Shear()
	if err != nil {
		return design.Capacity{}, fmt.Errorf("section %q: %w", s.Name, err)
	}

	phiMn := fl.PhiMn
	if in.Params.Phi > 0 {
		phiMn = in.Params.Phi * fl.Mn
	}

	return design.Capacity{
		Bending: phiMn * 1e3, // kN-m → N·m
		Shear:   phiVc * 1e3, // kN → N
		Factors: map[string]float64{
			"phi":   fl.Phi,
			"beta1": fl.Beta1,
			"c":     fl.C,
			"a":     fl.A,
			"epsT":  fl.EpsilonT,
			"Mn":    fl.Mn,
			"Vc":    vc,
		},
	}, nil
}

// Beam converts SI section properties to an rc.Beam in mm and MPa
func Beam(s *design.SectionProperties) (*rc.Beam, error) {
	if s.Rebar == nil || s.Rebar.As <= 0 {
		return nil, fmt.Errorf("section %q: tension reinforcement is required", s.Name)
	}
	fc, ok := s.Strength("fc")
	if !ok {
		return nil, fmt.Errorf("section %q: concrete strength fc is required", s.Name)
	}
	fy, ok := s.Strength("fy")
	if !ok {
		return nil, fmt.Errorf("section %q: steel strength fy is required", s.Name)
	}

	d := s.Rebar.Depth
	if d <= 0 {
		d = s.D
	}
	return &rc.Beam{
		Width:          s.B * 1e3,
		EffectiveDepth: d * 1e3,
		CompDepth:      s.Rebar.CompDepth * 1e3,
		Fc:             fc / 1e6,
		Fy:             fy / 1e6,
	}, nil
}
