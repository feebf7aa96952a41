package softening

import "math"

// stabilityIndices computes the Langelier Saturation Index and the calcium
// carbonate precipitation potential from finished-water chemistry using the
// modified Langelier correlation.
//
// Every log10 argument is floored at logFloor first, so a zero-calcium target
// or zero conductivity yields a finite (if extreme) index instead of -Inf.
func stabilityIndices(finCaEq, finAlk, finPH, conductivity, tempC float64) (lsi, ccpp float64) {
	tds := conductivity * tdsConductivityFactor
	tempK := tempC + 273.15

	a := (log10Floored(tds) - 1) / 10
	b := -13.12*math.Log10(tempK) + 34.55
	c := log10Floored(finCaEq) - 0.4
	d := log10Floored(finAlk)

	phSaturation := (9.3 + a + b) - (c + d)
	lsi = finPH - phSaturation

	// No precipitation potential when the water is undersaturated.
	if lsi > 0 {
		ccpp = finAlk * (1 - math.Pow(10, -lsi))
	}
	return lsi, ccpp
}

// TendencyFor maps a Langelier index to the discrete tendency label used by
// alert rules and display. Indices within ±0.1 of zero read as balanced.
func TendencyFor(lsi float64) string {
	switch {
	case lsi >= tendencyDeadband:
		return TendencyScaling
	case lsi <= -tendencyDeadband:
		return TendencyCorrosive
	default:
		return TendencyBalanced
	}
}

// log10Floored evaluates log10(max(v, logFloor)).
func log10Floored(v float64) float64 {
	if v < logFloor {
		v = logFloor
	}
	return math.Log10(v)
}
