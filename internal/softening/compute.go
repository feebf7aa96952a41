package softening

import "math"

// Compute runs the four-stage softening calculation: speciation, dosage,
// projection, stability. It is pure and side-effect free — identical inputs
// always produce identical outcomes, and concurrent callers need no
// coordination.
//
// Unreachable targets never produce an error: every subtraction-derived
// quantity is floored at zero before use, so a target above the raw
// concentration simply contributes no incremental demand.
func Compute(s RawWaterSample) SofteningOutcome {
	// --- Speciation -------------------------------------------------------
	caEq := s.CalciumMgL * caEquivFactor
	mgEq := s.MagnesiumMgL * mgEquivFactor
	rawHardness := caEq + mgEq

	// Dissolved CO2 as CaCO3 equivalents, from the first carbonic-acid
	// dissociation equilibrium.
	co2Eq := s.AlkalinityMgL * math.Pow(10, pK1-s.PH)

	// --- Dosage -----------------------------------------------------------
	// Carbonate hardness is the alkalinity-balanced fraction, apportioned to
	// calcium first.
	carbonateHardness := math.Min(rawHardness, s.AlkalinityMgL)
	caCH := math.Min(caEq, carbonateHardness)
	mgCH := clampZero(carbonateHardness - caCH)

	// Lime neutralizes CO2 1:1, precipitates calcium carbonate hardness 1:1,
	// and magnesium carbonate hardness at 2:1 (Mg(OH)2 route).
	limeEq := co2Eq + caCH + 2*mgCH

	// Non-carbonate magnesium beyond what the target leaves in the water is
	// removed with additional lime 1:1. The inner expression can go negative
	// when the target is reachable within carbonate hardness alone; the outer
	// clamp zeroes it.
	mgNCH := clampZero(mgEq - mgCH)
	limeEq += clampZero(mgNCH - s.TargetMagnesiumMgL)

	// Low magnesium residuals need pH ~10.6, which costs a fixed lime margin.
	highLime := s.TargetMagnesiumMgL < highLimeMgThreshold
	if highLime {
		limeEq += highLimeMargin
	}

	limeDose := limeEq * limeMassRatio

	// Soda ash covers non-carbonate hardness that lime alone cannot remove.
	sodaEq := clampZero(rawHardness - s.TargetCalciumMgL - s.TargetMagnesiumMgL - s.AlkalinityMgL)
	sodaDose := sodaEq * sodaAshMassRatio

	// --- Projection -------------------------------------------------------
	// Targets are the control variables: finished calcium and magnesium equal
	// them exactly.
	finCa := s.TargetCalciumMgL
	finMg := s.TargetMagnesiumMgL
	finHardness := finCa + finMg

	hardnessRemoved := rawHardness - finHardness
	finAlk := math.Max(minFinishedAlkalinity, s.AlkalinityMgL+sodaEq-hardnessRemoved)

	finPH := phOrdinary
	if highLime {
		finPH = phHighLime
	}

	// Removal terms are clamped so an over-raw target (nothing to remove)
	// contributes no sludge rather than negative mass.
	sludge := clampZero(caEq-finCa) + clampZero(mgEq-finMg)*mgHydroxideRatio

	// --- Stability --------------------------------------------------------
	lsi, ccpp := stabilityIndices(finCa, finAlk, finPH, s.ConductivityUScm, s.TemperatureC)

	return SofteningOutcome{
		LimeDoseMgL:           limeDose,
		SodaAshDoseMgL:        sodaDose,
		FinishedPH:            finPH,
		FinishedCalciumMgL:    finCa,
		FinishedMagnesiumMgL:  finMg,
		FinishedHardnessMgL:   finHardness,
		FinishedAlkalinityMgL: finAlk,
		SludgeMgL:             sludge,
		LSI:                   lsi,
		CCPP:                  ccpp,
		InitialHardnessMgL:    rawHardness,
	}
}

// clampZero floors v at zero. This is the engine's sole error-avoidance
// mechanism: over-subtraction yields a zero demand, never a negative dose.
func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
