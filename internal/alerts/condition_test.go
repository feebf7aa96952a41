package alerts

import (
	"testing"

	"github.com/limewatch/limewatch/internal/softening"
	"github.com/limewatch/limewatch/pkg/types"
)

func testAssessment() *types.Assessment {
	return &types.Assessment{
		SourceID: "intake-1",
		Outcome: softening.SofteningOutcome{
			LSI:                   0.8,
			CCPP:                  12.5,
			LimeDoseMgL:           260,
			SodaAshDoseMgL:        35,
			SludgeMgL:             214,
			FinishedPH:            10.6,
			FinishedAlkalinityMgL: 20,
			FinishedHardnessMgL:   50,
			InitialHardnessMgL:    302.7,
		},
		Tendency: softening.TendencyScaling,
	}
}

func TestEvalCondition(t *testing.T) {
	a := testAssessment()

	tests := []struct {
		cond      string
		wantFires bool
		wantValue float64
	}{
		{"lsi > 0.5", true, 0.8},
		{"lsi > 1.0", false, 0.8},
		{"lsi >= 0.8", true, 0.8},
		{"ccpp > 10", true, 12.5},
		{"ccpp < 10", false, 12.5},
		{"lime_dose > 300", false, 260},
		{"lime_dose <= 260", true, 260},
		{"soda_dose > 30", true, 35},
		{"sludge > 500", false, 214},
		{"finished_ph == 10.6", true, 10.6},
		{"finished_alkalinity <= 20", true, 20},
		{"finished_hardness > 80", false, 50},
		{"initial_hardness > 250", true, 302.7},
		{"tendency == scaling", true, 0.8},
		{"tendency == corrosive", false, 0.8},
	}
	for _, tc := range tests {
		t.Run(tc.cond, func(t *testing.T) {
			fires, value := evalCondition(tc.cond, a)
			if fires != tc.wantFires {
				t.Errorf("fires = %v, want %v", fires, tc.wantFires)
			}
			if fires && value != tc.wantValue {
				t.Errorf("value = %v, want %v", value, tc.wantValue)
			}
		})
	}
}

func TestEvalCondition_Malformed(t *testing.T) {
	a := testAssessment()
	cases := []string{
		"",
		"lsi >",
		"lsi > > 1",
		"unknown_field > 1",
		"lsi > notanumber",
		"tendency > scaling", // only == supported for tendency
	}
	for _, cond := range cases {
		if fires, _ := evalCondition(cond, a); fires {
			t.Errorf("evalCondition(%q) fired, want parse failure → no fire", cond)
		}
	}
}
