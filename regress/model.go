package regress

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Term is one estimated coefficient of a fitted model, excluding the
// intercept. Numeric predictors contribute a single term; categorical
// predictors contribute one term per non-reference level, labeled
// "column=level", interpreted against the reference level.
type Term struct {
	// Label identifies the design column ("runtime" or "genre=Drama").
	Label string
	// Predictor is the source predictor column name.
	Predictor string
	// Level is the categorical level of an indicator term, "" for numeric terms.
	Level string
	// Coefficient is the estimated OLS coefficient.
	Coefficient float64
	// StdErr is the coefficient's standard error.
	StdErr float64
	// TStat is Coefficient / StdErr, NaN when StdErr is zero (an exact fit
	// has no residual variance to test against).
	TStat float64
	// PValue is the two-sided p-value of TStat under Student's t with
	// n-p-1 degrees of freedom, NaN when TStat is NaN.
	PValue float64
}

// Model is an ordinary-least-squares linear model fitted on a dataset.
// A Model is immutable once fit.
type Model struct {
	response   string
	predictors []string
	infos      []predictorInfo

	intercept Term
	terms     []Term

	r2     float64
	adjR2  float64
	sigma2 float64
	n      int // observations
	p      int // estimated coefficients excluding intercept

	fitted    []float64
	residuals []float64

	beta   []float64  // intercept-first coefficient vector
	xtxInv *mat.Dense // retained for prediction intervals
}

// Response returns the response column name.
func (m *Model) Response() string { return m.response }

// Predictors returns the predictor names in fit order.
func (m *Model) Predictors() []string { return m.predictors }

// Intercept returns the intercept term.
func (m *Model) Intercept() Term { return m.intercept }

// Terms returns the estimated coefficient terms in design order.
func (m *Model) Terms() []Term { return m.terms }

// Term returns the term with the given label.
func (m *Model) Term(label string) (Term, bool) {
	for _, t := range m.terms {
		if t.Label == label {
			return t, true
		}
	}

	return Term{}, false
}

// RSquared returns the coefficient of determination.
func (m *Model) RSquared() float64 { return m.r2 }

// AdjRSquared returns R² penalized for the number of estimated coefficients:
// 1 - (1-R²)(n-1)/(n-p-1).
func (m *Model) AdjRSquared() float64 { return m.adjR2 }

// Sigma2 returns the residual variance estimate RSS/(n-p-1).
func (m *Model) Sigma2() float64 { return m.sigma2 }

// NumObservations returns the number of observations the model was fit on.
func (m *Model) NumObservations() int { return m.n }

// NumCoefficients returns the number of estimated coefficients excluding the
// intercept.
func (m *Model) NumCoefficients() int { return m.p }

// DegreesOfFreedom returns the residual degrees of freedom n-p-1.
func (m *Model) DegreesOfFreedom() int { return m.n - m.p - 1 }

// Fitted returns the per-observation fitted values. The slice is shared with
// the model; callers must treat it as read-only.
func (m *Model) Fitted() []float64 { return m.fitted }

// Residuals returns the per-observation residuals. The slice is shared with
// the model; callers must treat it as read-only.
func (m *Model) Residuals() []float64 { return m.residuals }

// Formula returns a human-readable representation of the fitted model.
func (m *Model) Formula() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s = %.4g", m.response, m.intercept.Coefficient)
	for _, t := range m.terms {
		if t.Coefficient >= 0 {
			fmt.Fprintf(&sb, " + %.4g·%s", t.Coefficient, t.Label)
		} else {
			fmt.Fprintf(&sb, " - %.4g·%s", -t.Coefficient, t.Label)
		}
	}

	return sb.String()
}

// String returns a short summary of the fitted model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{%s ~ %s, R²: %.4f, adj R²: %.4f, n: %d}",
		m.response, strings.Join(m.predictors, " + "), m.r2, m.adjR2, m.n)
}
