package api

// SampleRequest is the JSON body for POST /api/v1/soften and /api/v1/advice.
// Units mirror the engine: elemental mg/L for calcium and magnesium, mg/L as
// CaCO3 for alkalinity and the residual targets.
type SampleRequest struct {
	PH                 float64 `json:"ph"`
	CalciumMgL         float64 `json:"calcium_mg_l"`
	MagnesiumMgL       float64 `json:"magnesium_mg_l"`
	AlkalinityMgL      float64 `json:"alkalinity_mg_l"`
	ConductivityUScm   float64 `json:"conductivity_us_cm"`
	SulphateMgL        float64 `json:"sulphate_mg_l"`
	TemperatureC       float64 `json:"temperature_c"`
	TargetCalciumMgL   float64 `json:"target_calcium_mg_l"`
	TargetMagnesiumMgL float64 `json:"target_magnesium_mg_l"`
}

// OutcomeResponse is the JSON shape of one computed softening outcome.
type OutcomeResponse struct {
	LimeDoseMgL           float64 `json:"lime_dose_mg_l"`
	SodaAshDoseMgL        float64 `json:"soda_ash_dose_mg_l"`
	FinishedPH            float64 `json:"finished_ph"`
	FinishedCalciumMgL    float64 `json:"finished_calcium_mg_l"`
	FinishedMagnesiumMgL  float64 `json:"finished_magnesium_mg_l"`
	FinishedHardnessMgL   float64 `json:"finished_hardness_mg_l"`
	FinishedAlkalinityMgL float64 `json:"finished_alkalinity_mg_l"`
	SludgeMgL             float64 `json:"sludge_mg_l"`
	LSI                   float64 `json:"lsi"`
	CCPP                  float64 `json:"ccpp"`
	InitialHardnessMgL    float64 `json:"initial_hardness_mg_l"`
}

// ChartPair is one before/after bar pair, mg/L as CaCO3.
type ChartPair struct {
	Label    string  `json:"label"`
	Raw      float64 `json:"raw"`
	Finished float64 `json:"finished"`
}

// SoftenResponse is the payload for POST /api/v1/soften.
type SoftenResponse struct {
	Outcome  OutcomeResponse `json:"outcome"`
	Tendency string          `json:"tendency"`
	Chart    []ChartPair     `json:"chart"`
}

// AdviceResponse is the payload for POST /api/v1/advice. Advice is always
// displayable text; CredentialMissing distinguishes the actionable
// no-key case from a transient generation failure.
type AdviceResponse struct {
	Outcome           OutcomeResponse `json:"outcome"`
	Tendency          string          `json:"tendency"`
	Advice            string          `json:"advice"`
	CredentialMissing bool            `json:"credential_missing,omitempty"`
}

// AssessmentResponse is one monitored source's latest assessment in
// GET /api/v1/sources or GET /api/v1/sources/{id}.
type AssessmentResponse struct {
	SourceID  string          `json:"source_id"`
	Sample    SampleRequest   `json:"sample"`
	Outcome   OutcomeResponse `json:"outcome"`
	Tendency  string          `json:"tendency"`
	Chart     []ChartPair     `json:"chart"`
	ScrapedAt string          `json:"scraped_at"` // RFC3339
}

// SnapshotResponse is the payload for GET /api/v1/snapshot and the WebSocket
// broadcast body.
type SnapshotResponse struct {
	Sources     []AssessmentResponse `json:"sources"`
	GeneratedAt string               `json:"generated_at"` // RFC3339
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	SourceCount    int    `json:"source_count"`
	ScalingCount   int    `json:"scaling_count"`
	BalancedCount  int    `json:"balanced_count"`
	CorrosiveCount int    `json:"corrosive_count"`
	State          string `json:"state"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
