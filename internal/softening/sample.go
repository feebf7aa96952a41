package softening

// Equivalent-weight factors converting elemental mg/L to mg/L as CaCO3.
const (
	caEquivFactor = 2.497 // Ca2+ → CaCO3 equivalents (100.08 / 40.08)
	mgEquivFactor = 4.118 // Mg2+ → CaCO3 equivalents (100.08 / 24.31)
)

// Molar-mass conversion ratios between CaCO3 equivalents and reagent mass.
const (
	limeMassRatio    = 74.09 / 100.08  // Ca(OH)2 per CaCO3 equivalent
	sodaAshMassRatio = 105.99 / 100.08 // Na2CO3 per CaCO3 equivalent
	mgHydroxideRatio = 58.3 / 100.08   // Mg(OH)2 sludge per CaCO3 equivalent removed
)

// pK1 is the first carbonic-acid dissociation constant used to estimate
// dissolved CO2 from pH and alkalinity. Valid near-neutral pH.
const pK1 = 6.35

// Treatment-regime policy. A magnesium residual target below
// highLimeMgThreshold requires elevated pH (~10.6) to drive Mg(OH)2
// precipitation, which costs an extra lime margin. Both the margin and the
// finished-pH selection derive from this one threshold.
const (
	highLimeMgThreshold = 40.0 // mg/L as CaCO3
	highLimeMargin      = 30.0 // extra lime, mg/L as CaCO3
	phHighLime          = 10.6
	phOrdinary          = 9.8
)

// minFinishedAlkalinity is the practical alkalinity floor (mg/L as CaCO3)
// observed in lime-softened effluent.
const minFinishedAlkalinity = 20.0

// tdsConductivityFactor estimates total dissolved solids (mg/L) from
// conductivity (µS/cm).
const tdsConductivityFactor = 0.65

// logFloor is the minimum value fed to log10 in the stability correlation.
// Zero or negative TDS, calcium, or alkalinity would otherwise produce a
// non-finite index; flooring keeps Compute total over the whole input domain.
const logFloor = 1.0

// Tendency labels derived from the Langelier index.
const (
	TendencyScaling   = "scaling"
	TendencyBalanced  = "balanced"
	TendencyCorrosive = "corrosive"
)

// tendencyDeadband is the |LSI| band treated as balanced.
const tendencyDeadband = 0.1

// CalciumAsCaCO3 converts elemental calcium mg/L to CaCO3 equivalents.
// Exposed for presentation layers that chart raw against finished values.
func CalciumAsCaCO3(mgL float64) float64 { return mgL * caEquivFactor }

// MagnesiumAsCaCO3 converts elemental magnesium mg/L to CaCO3 equivalents.
func MagnesiumAsCaCO3(mgL float64) float64 { return mgL * mgEquivFactor }

// RawWaterSample is the immutable input to one softening calculation.
// Calcium and magnesium are elemental mg/L; alkalinity and the two residual
// targets are mg/L as CaCO3.
type RawWaterSample struct {
	PH               float64
	CalciumMgL       float64
	MagnesiumMgL     float64
	AlkalinityMgL    float64
	ConductivityUScm float64
	SulphateMgL      float64
	TemperatureC     float64

	// Residual targets the treatment is dosed to reach. Authoritative:
	// finished calcium and magnesium equal these exactly.
	TargetCalciumMgL   float64
	TargetMagnesiumMgL float64
}

// SofteningOutcome is the immutable result of one softening calculation.
// Doses are reagent mass: lime as Ca(OH)2, soda ash as Na2CO3. All remaining
// concentrations are mg/L as CaCO3 except FinishedPH and LSI.
type SofteningOutcome struct {
	LimeDoseMgL    float64
	SodaAshDoseMgL float64

	FinishedPH            float64
	FinishedCalciumMgL    float64
	FinishedMagnesiumMgL  float64
	FinishedHardnessMgL   float64
	FinishedAlkalinityMgL float64

	// SludgeMgL is dry solids: CaCO3 plus Mg(OH)2.
	SludgeMgL float64

	// LSI is the Langelier Saturation Index; positive is scale-forming.
	LSI float64

	// CCPP is the calcium carbonate precipitation potential, mg/L as CaCO3.
	// Zero whenever LSI ≤ 0.
	CCPP float64

	// InitialHardnessMgL is the raw-water hardness, kept for delta reporting.
	InitialHardnessMgL float64
}
