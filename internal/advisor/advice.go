package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/limewatch/limewatch/internal/softening"
)

// ErrCredentialMissing is returned when no API key is configured. It is the
// actionable failure kind: the operator can fix it by setting the key env.
// All other advice failures are informational and carry the underlying cause.
var ErrCredentialMissing = errors.New("advisor: credential missing")

const adviceMaxTokens = 600

const systemPrompt = `You are a water treatment process engineer reviewing lime-soda softening calculations for a municipal plant. Given raw water chemistry, computed reagent doses, and finished-water stability indices, write a short practical assessment: whether the treatment regime is appropriate, what the operator should watch (scaling, corrosion, sludge handling, recarbonation), and any dosing concerns. Plain prose, no markdown, at most three short paragraphs.`

// Advisor generates free-form treatment commentary for an assessment.
type Advisor struct {
	client *Client
}

// New creates an Advisor. client may be nil (no credential configured);
// Advise then returns ErrCredentialMissing.
func New(client *Client) *Advisor {
	return &Advisor{client: client}
}

// Enabled reports whether a credential is configured.
func (a *Advisor) Enabled() bool { return a.client.Enabled() }

// Advise asks the model for commentary on one softening calculation.
// Neither failure kind is fatal to the caller: a missing credential returns
// ErrCredentialMissing, anything else wraps the transport/API cause.
func (a *Advisor) Advise(ctx context.Context, sample softening.RawWaterSample, out softening.SofteningOutcome) (string, error) {
	if !a.client.Enabled() {
		return "", ErrCredentialMissing
	}

	text, err := a.client.Complete(ctx, systemPrompt, buildUserPrompt(sample, out), adviceMaxTokens)
	if err != nil {
		return "", fmt.Errorf("generate advice: %w", err)
	}
	return text, nil
}

// buildUserPrompt renders the sample and outcome as a compact worksheet for
// the model.
func buildUserPrompt(s softening.RawWaterSample, out softening.SofteningOutcome) string {
	var b strings.Builder

	b.WriteString("Raw water:\n")
	fmt.Fprintf(&b, "- pH %.2f, temperature %.1f °C\n", s.PH, s.TemperatureC)
	fmt.Fprintf(&b, "- calcium %.1f mg/L, magnesium %.1f mg/L (elemental)\n", s.CalciumMgL, s.MagnesiumMgL)
	fmt.Fprintf(&b, "- alkalinity %.1f mg/L as CaCO3, sulphate %.1f mg/L\n", s.AlkalinityMgL, s.SulphateMgL)
	fmt.Fprintf(&b, "- conductivity %.0f µS/cm\n", s.ConductivityUScm)
	fmt.Fprintf(&b, "- residual targets: calcium %.1f, magnesium %.1f mg/L as CaCO3\n\n",
		s.TargetCalciumMgL, s.TargetMagnesiumMgL)

	b.WriteString("Computed treatment:\n")
	fmt.Fprintf(&b, "- lime dose %.1f mg/L as Ca(OH)2, soda ash %.1f mg/L as Na2CO3\n",
		out.LimeDoseMgL, out.SodaAshDoseMgL)
	fmt.Fprintf(&b, "- hardness %.1f → %.1f mg/L as CaCO3\n",
		out.InitialHardnessMgL, out.FinishedHardnessMgL)
	fmt.Fprintf(&b, "- finished pH %.1f, finished alkalinity %.1f mg/L\n",
		out.FinishedPH, out.FinishedAlkalinityMgL)
	fmt.Fprintf(&b, "- sludge %.1f mg/L dry solids\n", out.SludgeMgL)
	fmt.Fprintf(&b, "- LSI %+.2f (%s), CCPP %.1f mg/L as CaCO3\n",
		out.LSI, softening.TendencyFor(out.LSI), out.CCPP)

	b.WriteString("\nAssess this treatment.")
	return b.String()
}
