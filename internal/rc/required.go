package rc

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/nscp"
)

// Requirement is the reinforcement needed for a factored moment
type Requirement struct {
	Mu float64 // kN-m

	As    float64 // required tension steel (mm²)
	Asc   float64 // required compression steel (mm²), 0 if singly reinforced
	AsMin float64 // mm²
	AsMax float64 // tension-controlled limit for singly reinforced (mm²)

	PhiMnMax float64 // singly reinforced capacity at ρmax (kN-m)
	Fsc      float64 // compression steel stress (MPa)

	Doubly  bool
	Message string
}

// Required computes the reinforcement for factored moment mu (kN-m).
// Above the singly reinforced limit the excess moment goes to a steel
// couple, which needs CompDepth.
func (b *Beam) Required(mu float64) (*Requirement, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	mu = math.Abs(mu)

	d := b.EffectiveDepth
	r := &Requirement{
		Mu:    mu,
		AsMin: nscp.RhoMin(b.Fc, b.Fy) * b.Width * d,
		AsMax: nscp.RhoMax(b.Fc, b.Fy) * b.Width * d,
	}

	phi := nscp.PhiFlexure
	aMax := r.AsMax * b.Fy / (0.85 * b.Fc * b.Width)
	r.PhiMnMax = phi * r.AsMax * b.Fy * (d - aMax/2) / 1e6

	if mu <= r.PhiMnMax {
		// Rn = Mu/(φbd²), ρ = (0.85f'c/fy)(1 - √(1 - 2Rn/0.85f'c))
		rn := mu * 1e6 / (phi * b.Width * d * d)
		rho := (0.85 * b.Fc / b.Fy) * (1 - math.Sqrt(1-2*rn/(0.85*b.Fc)))
		r.As = math.Max(rho*b.Width*d, r.AsMin)
		r.Message = "Singly reinforced section is adequate"
		return r, nil
	}

	if b.CompDepth <= 0 || b.CompDepth >= d {
		return nil, fmt.Errorf("Mu=%.2f kN-m exceeds φMn,max=%.2f kN-m and no compression steel depth is given", mu, r.PhiMnMax)
	}

	r.Doubly = true
	cMax := aMax / nscp.Beta1(b.Fc)
	esc := nscp.EpsilonCU * (cMax - b.CompDepth) / cMax
	r.Fsc = b.compStress(esc)
	if r.Fsc <= 0 {
		return nil, fmt.Errorf("compression steel at d'=%.2f mm is not in compression", b.CompDepth)
	}

	// Mu2 = φ·As2·fy·(d - d'), As2·fy = A's·f's
	as2 := (mu - r.PhiMnMax) * 1e6 / (phi * b.Fy * (d - b.CompDepth))
	r.As = r.AsMax + as2
	r.Asc = as2 * b.Fy / r.Fsc
	if r.Fsc < b.Fy {
		r.Message = fmt.Sprintf("Doubly reinforced - compression steel does not yield (f'sc = %.1f MPa)", r.Fsc)
	} else {
		r.Message = "Doubly reinforced - compression steel yields"
	}
	return r, nil
}
