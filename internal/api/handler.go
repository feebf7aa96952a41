package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/limewatch/limewatch/internal/advisor"
	"github.com/limewatch/limewatch/internal/alerts"
	"github.com/limewatch/limewatch/internal/softening"
	"github.com/limewatch/limewatch/internal/store"
	"github.com/limewatch/limewatch/pkg/types"
)

// Handler is the HTTP handler for all /api/v1/* endpoints. Monitoring reads
// come from the assessment store; ad-hoc calculations run through a memoized
// engine so repeated identical requests do not recompute.
type Handler struct {
	store   *store.Store
	engine  *alerts.Engine
	advisor *advisor.Advisor
	memo    *softening.Memo
	mux     *http.ServeMux
}

// New creates a Handler and registers all routes. engine and adv may be nil
// when alerting or advice is not configured.
func New(st *store.Store, engine *alerts.Engine, adv *advisor.Advisor) http.Handler {
	h := &Handler{
		store:   st,
		engine:  engine,
		advisor: adv,
		memo:    softening.NewMemo(),
		mux:     http.NewServeMux(),
	}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/sources", h.listSources)
	h.mux.HandleFunc("/api/v1/sources/", h.getSource) // subtree — extracts {id}
	h.mux.HandleFunc("/api/v1/alerts", h.alerts)
	h.mux.HandleFunc("/api/v1/snapshot", h.snapshot)
	h.mux.HandleFunc("/api/v1/soften", h.soften)
	h.mux.HandleFunc("/api/v1/advice", h.advice)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health — live source count and tendency tally.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.store.List()
	resp := HealthResponse{SourceCount: len(entries)}

	if len(entries) == 0 {
		resp.State = "idle"
		jsonResp(w, http.StatusOK, resp)
		return
	}

	for _, e := range entries {
		switch e.Assessment.Tendency {
		case softening.TendencyScaling:
			resp.ScalingCount++
		case softening.TendencyBalanced:
			resp.BalancedCount++
		case softening.TendencyCorrosive:
			resp.CorrosiveCount++
		}
	}
	resp.State = "ok"
	jsonResp(w, http.StatusOK, resp)
}

// listSources returns GET /api/v1/sources — latest assessment per live source.
func (h *Handler) listSources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.store.List()
	out := make([]AssessmentResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAssessmentResponse(e.Assessment))
	}
	jsonResp(w, http.StatusOK, out)
}

// getSource returns GET /api/v1/sources/{id} — a single source's assessment.
func (h *Handler) getSource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/sources/")
	if id == "" {
		// Redirect bare /api/v1/sources/ to list handler.
		h.listSources(w, r)
		return
	}

	e, ok := h.store.Get(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "source not found")
		return
	}
	// Exclude stale entries — treat them as not found.
	if time.Since(e.UpdatedAt) > h.store.TTL() {
		jsonErr(w, http.StatusNotFound, "source not found")
		return
	}

	jsonResp(w, http.StatusOK, toAssessmentResponse(e.Assessment))
}

// alerts returns GET /api/v1/alerts — firing plus recently resolved alerts.
func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.engine == nil {
		jsonResp(w, http.StatusOK, []struct{}{})
		return
	}
	jsonResp(w, http.StatusOK, h.engine.Active())
}

// snapshot returns GET /api/v1/snapshot — full dump of all live sources.
// The same payload is pushed over the WebSocket stream.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, BuildSnapshot(h.store))
}

// soften handles POST /api/v1/soften — a one-shot calculation for a sample
// supplied in the request body.
func (h *Handler) soften(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sample, ok := decodeSample(w, r)
	if !ok {
		return
	}

	out := h.memo.Compute(sample)
	jsonResp(w, http.StatusOK, SoftenResponse{
		Outcome:  toOutcomeResponse(out),
		Tendency: softening.TendencyFor(out.LSI),
		Chart:    buildChart(sample, out),
	})
}

// advice handles POST /api/v1/advice — a calculation plus model-generated
// commentary. Advice failures degrade to displayable text; only a malformed
// request is an HTTP error.
func (h *Handler) advice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sample, ok := decodeSample(w, r)
	if !ok {
		return
	}

	out := h.memo.Compute(sample)
	resp := AdviceResponse{
		Outcome:  toOutcomeResponse(out),
		Tendency: softening.TendencyFor(out.LSI),
	}

	if h.advisor == nil {
		resp.CredentialMissing = true
		resp.Advice = "advice unavailable: no API credential configured"
		jsonResp(w, http.StatusOK, resp)
		return
	}

	text, err := h.advisor.Advise(r.Context(), sample, out)
	switch {
	case errors.Is(err, advisor.ErrCredentialMissing):
		resp.CredentialMissing = true
		resp.Advice = "advice unavailable: no API credential configured"
	case err != nil:
		resp.Advice = "advice generation failed: " + err.Error()
	default:
		resp.Advice = text
	}
	jsonResp(w, http.StatusOK, resp)
}

// --- helpers ----------------------------------------------------------------

// BuildSnapshot renders the live store contents as a snapshot payload. Shared
// with the WebSocket broadcaster.
func BuildSnapshot(st *store.Store) SnapshotResponse {
	entries := st.List()
	sources := make([]AssessmentResponse, 0, len(entries))
	for _, e := range entries {
		sources = append(sources, toAssessmentResponse(e.Assessment))
	}
	return SnapshotResponse{
		Sources:     sources,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func decodeSample(w http.ResponseWriter, r *http.Request) (softening.RawWaterSample, bool) {
	var req SampleRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return softening.RawWaterSample{}, false
	}
	return softening.RawWaterSample{
		PH:                 req.PH,
		CalciumMgL:         req.CalciumMgL,
		MagnesiumMgL:       req.MagnesiumMgL,
		AlkalinityMgL:      req.AlkalinityMgL,
		ConductivityUScm:   req.ConductivityUScm,
		SulphateMgL:        req.SulphateMgL,
		TemperatureC:       req.TemperatureC,
		TargetCalciumMgL:   req.TargetCalciumMgL,
		TargetMagnesiumMgL: req.TargetMagnesiumMgL,
	}, true
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// toAssessmentResponse maps a stored assessment to its JSON representation.
func toAssessmentResponse(a *types.Assessment) AssessmentResponse {
	return AssessmentResponse{
		SourceID:  a.SourceID,
		Sample:    toSampleRequest(a.Sample),
		Outcome:   toOutcomeResponse(a.Outcome),
		Tendency:  a.Tendency,
		Chart:     buildChart(a.Sample, a.Outcome),
		ScrapedAt: a.ScrapedAt.UTC().Format(time.RFC3339),
	}
}

func toSampleRequest(s softening.RawWaterSample) SampleRequest {
	return SampleRequest{
		PH:                 s.PH,
		CalciumMgL:         s.CalciumMgL,
		MagnesiumMgL:       s.MagnesiumMgL,
		AlkalinityMgL:      s.AlkalinityMgL,
		ConductivityUScm:   s.ConductivityUScm,
		SulphateMgL:        s.SulphateMgL,
		TemperatureC:       s.TemperatureC,
		TargetCalciumMgL:   s.TargetCalciumMgL,
		TargetMagnesiumMgL: s.TargetMagnesiumMgL,
	}
}

func toOutcomeResponse(out softening.SofteningOutcome) OutcomeResponse {
	return OutcomeResponse{
		LimeDoseMgL:           out.LimeDoseMgL,
		SodaAshDoseMgL:        out.SodaAshDoseMgL,
		FinishedPH:            out.FinishedPH,
		FinishedCalciumMgL:    out.FinishedCalciumMgL,
		FinishedMagnesiumMgL:  out.FinishedMagnesiumMgL,
		FinishedHardnessMgL:   out.FinishedHardnessMgL,
		FinishedAlkalinityMgL: out.FinishedAlkalinityMgL,
		SludgeMgL:             out.SludgeMgL,
		LSI:                   out.LSI,
		CCPP:                  out.CCPP,
		InitialHardnessMgL:    out.InitialHardnessMgL,
	}
}

// buildChart renders raw-versus-finished bar pairs, all mg/L as CaCO3 so the
// four pairs share one axis.
func buildChart(s softening.RawWaterSample, out softening.SofteningOutcome) []ChartPair {
	return []ChartPair{
		{Label: "calcium", Raw: softening.CalciumAsCaCO3(s.CalciumMgL), Finished: out.FinishedCalciumMgL},
		{Label: "magnesium", Raw: softening.MagnesiumAsCaCO3(s.MagnesiumMgL), Finished: out.FinishedMagnesiumMgL},
		{Label: "hardness", Raw: out.InitialHardnessMgL, Finished: out.FinishedHardnessMgL},
		{Label: "alkalinity", Raw: s.AlkalinityMgL, Finished: out.FinishedAlkalinityMgL},
	}
}
