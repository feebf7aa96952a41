package alerts

import (
	"strconv"
	"strings"

	"github.com/limewatch/limewatch/pkg/types"
)

// evalCondition evaluates a rule condition string against an Assessment.
//
// Supported expressions (field operator value):
//
//	lsi > 0.5
//	ccpp > 10
//	lime_dose > 300
//	soda_dose > 100
//	sludge > 500
//	finished_ph == 10.6
//	finished_alkalinity <= 20
//	initial_hardness > 400
//	finished_hardness > 80
//	tendency == scaling
//	tendency == corrosive
//
// Returns (fires bool, triggering value float64).
// Returns (false, 0) if the expression cannot be parsed or the field is unknown.
func evalCondition(cond string, a *types.Assessment) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	if field == "tendency" {
		if op == "==" {
			return a.Tendency == rhs, a.Outcome.LSI
		}
		return false, 0
	}

	v, ok := numericField(field, a)
	if !ok {
		return false, 0
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0
	}
	return compareFloat(v, op, threshold), v
}

// numericField maps a field name to its value in the assessment.
func numericField(field string, a *types.Assessment) (float64, bool) {
	out := a.Outcome
	switch field {
	case "lsi":
		return out.LSI, true
	case "ccpp":
		return out.CCPP, true
	case "lime_dose":
		return out.LimeDoseMgL, true
	case "soda_dose":
		return out.SodaAshDoseMgL, true
	case "sludge":
		return out.SludgeMgL, true
	case "finished_ph":
		return out.FinishedPH, true
	case "finished_alkalinity":
		return out.FinishedAlkalinityMgL, true
	case "finished_hardness":
		return out.FinishedHardnessMgL, true
	case "initial_hardness":
		return out.InitialHardnessMgL, true
	default:
		return 0, false
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
