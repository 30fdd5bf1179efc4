package nscp

import "math"

// Concrete and reinforcing steel limits of NSCP 2015 Chapter 4. Stresses are
// in MPa and strains are dimensionless; callers holding SI values (Pa)
// convert at their boundary (see coderules.Beam).
const (
	Beta1Max = 0.85 // stress block factor up to f'c = 28 MPa
	Beta1Min = 0.65

	EpsilonCU = 0.003 // usable concrete strain
	EpsilonTC = 0.005 // net tensile strain of a tension-controlled section

	PhiFlexure     = 0.90 // tension-controlled
	PhiShear       = 0.75
	PhiCompression = 0.65 // compression-controlled, tied

	Es = 200000.0 // steel modulus (MPa)
)

// YieldStrain returns εy = fy / Es
func YieldStrain(fy float64) float64 {
	return fy / Es
}

// Beta1 returns the stress block depth factor for f'c (410.2.7.3)
func Beta1(fc float64) float64 {
	if fc <= 28 {
		return Beta1Max
	}
	return math.Max(Beta1Max-0.05*(fc-28)/7, Beta1Min)
}

// Phi returns the strength reduction factor for net tensile strain et,
// linear between εy and εy + 0.003 (409.3.2)
func Phi(et, fy float64) float64 {
	ey := YieldStrain(fy)
	switch {
	case et >= ey+EpsilonCU:
		return PhiFlexure
	case et <= ey:
		return PhiCompression
	}
	return PhiCompression + (PhiFlexure-PhiCompression)*(et-ey)/EpsilonCU
}

// RhoMin returns max(√f'c / 4fy, 1.4/fy) (409.6.1.2)
func RhoMin(fc, fy float64) float64 {
	return math.Max(math.Sqrt(fc)/(4*fy), 1.4/fy)
}

// RhoMax returns the largest singly reinforced ratio that is still
// tension-controlled (εt = 0.005)
func RhoMax(fc, fy float64) float64 {
	return 0.85 * Beta1(fc) * (fc / fy) * EpsilonCU / (EpsilonCU + EpsilonTC)
}

// RhoBalanced returns the ratio at which the tension steel yields as the
// concrete reaches εcu. Above it the steel stays elastic.
func RhoBalanced(fc, fy float64) float64 {
	return 0.85 * Beta1(fc) * (fc / fy) * EpsilonCU / (EpsilonCU + YieldStrain(fy))
}
