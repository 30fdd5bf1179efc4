// Package rc computes the strength of rectangular reinforced concrete beam
// sections per NSCP 2015. Units: mm, MPa, kN and kN-m.
package rc

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/nscp"
)

// Beam is a rectangular reinforced concrete section
type Beam struct {
	// Geometry (mm)
	Width          float64 // b
	EffectiveDepth float64 // d - to centroid of tension steel
	CompDepth      float64 // d' - to centroid of compression steel

	// Materials (MPa)
	Fc float64 // f'c
	Fy float64 // fy
}

// Flexure holds the nominal and design flexural strength of a section
type Flexure struct {
	A     float64 // depth of compression block (mm)
	C     float64 // neutral axis depth (mm)
	Beta1 float64

	EpsilonT  float64 // tension steel strain
	EpsilonSc float64 // compression steel strain, 0 if singly reinforced
	Fs        float64 // tension steel stress (MPa)
	Fsc       float64 // compression steel stress (MPa)

	Rho    float64
	RhoMin float64
	RhoMax float64
	RhoBal float64 // balanced ratio; above it singly reinforced steel does not yield

	Phi   float64
	Mn    float64 // kN-m
	PhiMn float64 // kN-m

	TensionControlled bool
	MeetsMinReinf     bool
	Message           string
}

func (b *Beam) validate() error {
	if b.Width <= 0 || b.EffectiveDepth <= 0 {
		return fmt.Errorf("invalid beam dimensions: width=%.2f, d=%.2f", b.Width, b.EffectiveDepth)
	}
	if b.Fc <= 0 || b.Fy <= 0 {
		return fmt.Errorf("invalid material properties: f'c=%.2f, fy=%.2f", b.Fc, b.Fy)
	}
	return nil
}

// Flexure computes the moment capacity for tension steel as and compression
// steel asc (mm²). With asc = 0 the section is singly reinforced.
func (b *Beam) Flexure(as, asc float64) (*Flexure, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if as <= 0 {
		return nil, fmt.Errorf("invalid tension reinforcement: As=%.2f", as)
	}
	if asc < 0 {
		return nil, fmt.Errorf("invalid compression reinforcement: A'sc=%.2f", asc)
	}
	if asc > 0 && (b.CompDepth <= 0 || b.CompDepth >= b.EffectiveDepth) {
		return nil, fmt.Errorf("invalid compression steel depth: d'=%.2f, d=%.2f", b.CompDepth, b.EffectiveDepth)
	}

	r := &Flexure{
		Beta1:  nscp.Beta1(b.Fc),
		RhoMin: nscp.RhoMin(b.Fc, b.Fy),
		RhoMax: nscp.RhoMax(b.Fc, b.Fy),
		RhoBal: nscp.RhoBalanced(b.Fc, b.Fy),
		Rho:    as / (b.Width * b.EffectiveDepth),
	}
	r.MeetsMinReinf = r.Rho >= r.RhoMin

	switch {
	case asc == 0 && r.Rho <= r.RhoBal:
		// T = C → As·fy = 0.85·f'c·b·a
		r.A = as * b.Fy / (0.85 * b.Fc * b.Width)
		r.C = r.A / r.Beta1
		r.EpsilonT = nscp.EpsilonCU * (b.EffectiveDepth - r.C) / r.C
		r.Fs = b.Fy
		r.Mn = as * b.Fy * (b.EffectiveDepth - r.A/2) / 1e6
	case asc == 0:
		// elastic steel: As·Es·εcu·(d - c)/c = 0.85·f'c·b·β1·c
		k := 0.85 * b.Fc * b.Width * r.Beta1
		m := as * nscp.Es * nscp.EpsilonCU
		r.C = (-m + math.Sqrt(m*m+4*k*m*b.EffectiveDepth)) / (2 * k)
		r.A = r.Beta1 * r.C
		r.EpsilonT = nscp.EpsilonCU * (b.EffectiveDepth - r.C) / r.C
		r.Fs = r.EpsilonT * nscp.Es
		r.Mn = as * r.Fs * (b.EffectiveDepth - r.A/2) / 1e6
	default:
		r.C = b.neutralAxis(as, asc, r.Beta1)
		r.A = r.Beta1 * r.C
		r.EpsilonT = nscp.EpsilonCU * (b.EffectiveDepth - r.C) / r.C
		r.EpsilonSc = nscp.EpsilonCU * (r.C - b.CompDepth) / r.C
		r.Fs = math.Min(r.EpsilonT*nscp.Es, b.Fy)
		r.Fsc = b.compStress(r.EpsilonSc)

		cc := 0.85 * b.Fc * b.Width * r.A // N
		cs := asc * b.netCompStress(r.Fsc, r.A)
		r.Mn = (cc*(b.EffectiveDepth-r.A/2) + cs*(b.EffectiveDepth-b.CompDepth)) / 1e6
	}

	r.Phi = nscp.Phi(r.EpsilonT, b.Fy)
	r.PhiMn = r.Phi * r.Mn
	r.TensionControlled = r.EpsilonT >= nscp.EpsilonTC

	switch {
	case r.TensionControlled:
		r.Message = "Section is tension-controlled (εt ≥ 0.005)"
	case r.EpsilonT >= nscp.YieldStrain(b.Fy):
		r.Message = "Section is in transition zone"
	default:
		r.Message = "Section is compression-controlled (εt < εy)"
	}
	if !r.MeetsMinReinf {
		r.Message += " | WARNING: Below minimum reinforcement"
	}
	switch {
	case asc == 0 && r.Rho > r.RhoBal:
		r.Message += " | WARNING: Over-reinforced, tension steel does not yield"
	case asc == 0 && r.Rho > r.RhoMax:
		r.Message += " | WARNING: Exceeds maximum reinforcement"
	}
	return r, nil
}

// neutralAxis finds c from As·fs = 0.85·f'c·b·β1·c + A's·f's by damped
// fixed-point iteration, starting from both steels yielding
func (b *Beam) neutralAxis(as, asc, beta1 float64) float64 {
	k := 0.85 * b.Fc * b.Width * beta1
	c := (as*b.Fy - asc*(b.Fy-0.85*b.Fc)) / k
	if c <= b.CompDepth {
		c = 1.1 * b.CompDepth
	}
	for i := 0; i < 100; i++ {
		et := nscp.EpsilonCU * (b.EffectiveDepth - c) / c
		esc := nscp.EpsilonCU * (c - b.CompDepth) / c
		fs := math.Max(math.Min(et*nscp.Es, b.Fy), 0)
		fsc := b.netCompStress(b.compStress(esc), beta1*c)

		cNew := (as*fs - asc*fsc) / k
		if cNew <= 0 {
			cNew = c / 2
		}
		if math.Abs(cNew-c) < 1e-3 {
			return cNew
		}
		c = (c + cNew) / 2
	}
	return c
}

// compStress is the compression steel stress for strain esc, capped at ±fy
func (b *Beam) compStress(esc float64) float64 {
	return math.Max(math.Min(esc*nscp.Es, b.Fy), -b.Fy)
}

// netCompStress removes the concrete displaced by compression steel lying
// inside the stress block of depth a
func (b *Beam) netCompStress(fsc, a float64) float64 {
	if a >= b.CompDepth {
		return fsc - 0.85*b.Fc
	}
	return fsc
}

// Shear returns the design concrete shear strength φVc = φ·0.17·λ·√f'c·b·d (kN)
// of a normal-weight section
func (b *Beam) Shear() (vc, phiVc float64, err error) {
	if err = b.validate(); err != nil {
		return 0, 0, err
	}
	vc = 0.17 * math.Sqrt(b.Fc) * b.Width * b.EffectiveDepth / 1e3
	return vc, nscp.PhiShear * vc, nil
}
