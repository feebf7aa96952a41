// Package softening implements the lime-soda softening calculation engine.
//
// sample.go defines the two value types: RawWaterSample (input) and
// SofteningOutcome (output). Both are plain comparable structs, created fresh
// per call and never mutated.
//
// compute.go provides the pure Compute(RawWaterSample) function. It runs four
// ordered stages — speciation, dosage, projection, stability — with data
// flowing strictly forward. Out-of-range intermediate results are floored at
// zero rather than reported as errors; unreachable targets therefore yield a
// zero incremental dose, never a negative one.
//
// stability.go derives the Langelier Saturation Index and the calcium
// carbonate precipitation potential from finished-water chemistry, plus the
// discrete tendency label used by alerting and display. Logarithm arguments
// are floored at logFloor so the function stays finite for zero-calcium or
// zero-conductivity inputs.
//
// memo.go provides an optional exact-input memoization wrapper. It is purely
// an optimization: memoized and direct paths always agree.
//
// Policy thresholds: a magnesium target below 40 mg/L (as CaCO3) selects the
// high-lime regime, which adds a 30 mg/L lime margin and sets finished pH to
// 10.6; at or above 40 the ordinary regime applies with finished pH 9.8.
package softening
