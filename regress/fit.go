package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arloliu/fitwise/dataset"
)

// Fit estimates an ordinary-least-squares linear model of the numeric
// response column on the given predictors.
//
// Categorical predictors are expanded into indicator columns for every
// non-reference level, so their coefficients read as level offsets against
// the reference level. All involved columns must be free of missing values.
//
// Error conditions:
//   - dataset.ErrInvalidInput: unknown columns, non-numeric response,
//     no predictors, response among predictors, or missing values
//   - ErrModelFit: singular design (collinear or constant predictors) or
//     non-positive residual degrees of freedom
func Fit(ds *dataset.Dataset, response string, predictors []string) (*Model, error) {
	if len(predictors) == 0 {
		return nil, fmt.Errorf("%w: no predictors given", dataset.ErrInvalidInput)
	}
	for _, p := range predictors {
		if p == response {
			return nil, fmt.Errorf("%w: response %q appears in predictors", dataset.ErrInvalidInput, response)
		}
	}

	yCol, err := ds.Numeric(response)
	if err != nil {
		return nil, err
	}
	if yCol.HasMissing() {
		return nil, fmt.Errorf("%w: response %q contains missing values", dataset.ErrInvalidInput, response)
	}

	x, terms, infos, err := buildDesign(ds, predictors)
	if err != nil {
		return nil, err
	}

	n := ds.NumRows()
	p := len(terms)
	df := n - p - 1
	if df <= 0 {
		return nil, fmt.Errorf("%w: %d observations cannot support %d coefficients", ErrModelFit, n, p+1)
	}

	y := mat.NewVecDense(n, nil)
	for i, v := range yCol.Values() {
		y.SetVec(i, v)
	}

	// Normal equations: beta = (XᵀX)⁻¹ Xᵀy. The inverse is retained because
	// standard errors and prediction intervals both need (XᵀX)⁻¹ directly.
	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("%w: singular design matrix (collinear or constant predictors): %v", ErrModelFit, err)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	// Fitted values, residuals, sums of squares.
	var yhat mat.VecDense
	yhat.MulVec(x, &beta)

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	rss := 0.0
	for i := 0; i < n; i++ {
		fitted[i] = yhat.AtVec(i)
		residuals[i] = y.AtVec(i) - fitted[i]
		rss += residuals[i] * residuals[i]
	}

	yMean := mat.Sum(y) / float64(n)
	tss := 0.0
	for i := 0; i < n; i++ {
		d := y.AtVec(i) - yMean
		tss += d * d
	}

	r2 := 0.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}
	adjR2 := 1 - (1-r2)*float64(n-1)/float64(df)
	sigma2 := rss / float64(df)

	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	coefTerm := func(idx int, t Term) Term {
		t.Coefficient = beta.AtVec(idx)
		t.StdErr = math.Sqrt(sigma2 * xtxInv.At(idx, idx))
		if t.StdErr > 0 {
			t.TStat = t.Coefficient / t.StdErr
			t.PValue = 2 * tdist.Survival(math.Abs(t.TStat))
		} else {
			// An exact fit leaves no residual variance to test against, so
			// the t statistic is undefined rather than infinitely significant.
			t.TStat = math.NaN()
			t.PValue = math.NaN()
		}

		return t
	}

	model := &Model{
		response:   response,
		predictors: append([]string(nil), predictors...),
		infos:      infos,
		intercept:  coefTerm(0, Term{Label: "(intercept)"}),
		r2:         r2,
		adjR2:      adjR2,
		sigma2:     sigma2,
		n:          n,
		p:          p,
		fitted:     fitted,
		residuals:  residuals,
		beta:       make([]float64, p+1),
		xtxInv:     &xtxInv,
	}

	model.terms = make([]Term, p)
	for j, term := range terms {
		model.terms[j] = coefTerm(j+1, Term{
			Label:     term.label,
			Predictor: term.predictor,
			Level:     term.level,
		})
	}
	for j := 0; j <= p; j++ {
		model.beta[j] = beta.AtVec(j)
	}

	return model, nil
}
