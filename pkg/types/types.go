package types

import (
	"time"

	"github.com/limewatch/limewatch/internal/softening"
)

// Assessment is one complete softening evaluation for a monitored source:
// the raw sample read from instrumentation, the computed outcome, and the
// discrete stability tendency. Treated as immutable once constructed.
type Assessment struct {
	SourceID  string
	Sample    softening.RawWaterSample
	Outcome   softening.SofteningOutcome
	Tendency  string
	ScrapedAt time.Time
}

// NewAssessment runs the softening engine for sample and wraps the result.
func NewAssessment(sourceID string, sample softening.RawWaterSample, at time.Time) *Assessment {
	out := softening.Compute(sample)
	return &Assessment{
		SourceID:  sourceID,
		Sample:    sample,
		Outcome:   out,
		Tendency:  softening.TendencyFor(out.LSI),
		ScrapedAt: at,
	}
}
