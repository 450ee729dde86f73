package stepwise

import (
	"fmt"
	"strings"
)

// Step records one accepted predictor and the adjusted R² its acceptance
// achieved.
type Step struct {
	// Predictor is the accepted predictor name.
	Predictor string
	// AdjR2 is the adjusted R² of the model after this predictor was added.
	AdjR2 float64
}

// Result is the outcome of a forward selection run: the accepted predictors
// in acceptance order with the adjusted R² trajectory.
type Result struct {
	response string
	steps    []Step
}

// Response returns the response column name the selection ran against.
func (r *Result) Response() string { return r.response }

// Steps returns the accepted steps in order. The slice is shared with the
// result; callers must treat it as read-only.
func (r *Result) Steps() []Step { return r.steps }

// Selected returns the accepted predictor names in acceptance order.
func (r *Result) Selected() []string {
	names := make([]string, len(r.steps))
	for i, s := range r.steps {
		names[i] = s.Predictor
	}

	return names
}

// FinalAdjR2 returns the adjusted R² at the last accepted step, or 0 if no
// predictor was accepted.
func (r *Result) FinalAdjR2() float64 {
	if len(r.steps) == 0 {
		return 0
	}

	return r.steps[len(r.steps)-1].AdjR2
}

// String returns a human-readable summary of the selection trajectory.
func (r *Result) String() string {
	if len(r.steps) == 0 {
		return fmt.Sprintf("Selection{%s ~ 1, no predictor accepted}", r.response)
	}

	parts := make([]string, len(r.steps))
	for i, s := range r.steps {
		parts[i] = fmt.Sprintf("%s (%.4f)", s.Predictor, s.AdjR2)
	}

	return fmt.Sprintf("Selection{%s ~ %s}", r.response, strings.Join(parts, " + "))
}
