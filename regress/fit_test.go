package regress

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitwise/dataset"
)

func TestFitExactLine(t *testing.T) {
	// y = 1 + 2*x exactly.
	x := []float64{1, 2, 3, 4, 5, 6}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 1 + 2*v
	}

	ds, err := dataset.New(
		dataset.NewNumeric("x", x),
		dataset.NewNumeric("y", y),
	)
	require.NoError(t, err)

	model, err := Fit(ds, "y", []string{"x"})
	require.NoError(t, err)

	require.InDelta(t, 1.0, model.Intercept().Coefficient, 1e-9)
	term, ok := model.Term("x")
	require.True(t, ok)
	require.InDelta(t, 2.0, term.Coefficient, 1e-9)
	require.InDelta(t, 1.0, model.RSquared(), 1e-12)
	require.InDelta(t, 1.0, model.AdjRSquared(), 1e-12)

	for i := range y {
		require.InDelta(t, y[i], model.Fitted()[i], 1e-9)
		require.InDelta(t, 0.0, model.Residuals()[i], 1e-9)
	}
}

func TestFitExactFitHasUndefinedTStats(t *testing.T) {
	// An all-zero response is fitted exactly: beta, residuals and sigma2 all
	// come out exactly zero, so the standard errors are zero and the t
	// statistics must be reported as undefined, not as zero.
	ds, err := dataset.New(
		dataset.NewNumeric("x", []float64{1, 2, 3, 4}),
		dataset.NewNumeric("y", []float64{0, 0, 0, 0}),
	)
	require.NoError(t, err)

	model, err := Fit(ds, "y", []string{"x"})
	require.NoError(t, err)

	require.Zero(t, model.Intercept().StdErr)
	require.True(t, math.IsNaN(model.Intercept().TStat))
	require.True(t, math.IsNaN(model.Intercept().PValue))

	term, ok := model.Term("x")
	require.True(t, ok)
	require.Zero(t, term.StdErr)
	require.True(t, math.IsNaN(term.TStat))
	require.True(t, math.IsNaN(term.PValue))
}

func TestFitTwoPredictorsExact(t *testing.T) {
	// y = 1 + 2*x1 - 3*x2 exactly, x1 and x2 not collinear.
	x1 := []float64{1, 2, 3, 4, 5, 6}
	x2 := []float64{2, 1, 4, 3, 6, 8}
	y := make([]float64, len(x1))
	for i := range x1 {
		y[i] = 1 + 2*x1[i] - 3*x2[i]
	}

	ds, err := dataset.New(
		dataset.NewNumeric("x1", x1),
		dataset.NewNumeric("x2", x2),
		dataset.NewNumeric("y", y),
	)
	require.NoError(t, err)

	model, err := Fit(ds, "y", []string{"x1", "x2"})
	require.NoError(t, err)

	require.InDelta(t, 1.0, model.Intercept().Coefficient, 1e-9)
	t1, _ := model.Term("x1")
	t2, _ := model.Term("x2")
	require.InDelta(t, 2.0, t1.Coefficient, 1e-9)
	require.InDelta(t, -3.0, t2.Coefficient, 1e-9)
	require.Equal(t, 2, model.NumCoefficients())
	require.Equal(t, 3, model.DegreesOfFreedom())
}

func TestFitCategoricalGroupMeans(t *testing.T) {
	// One categorical predictor with constant response per level: the
	// intercept is the reference level mean and each indicator coefficient
	// is that level's offset from it.
	ds, err := dataset.New(
		dataset.NewCategorical("genre", []string{"Drama", "Drama", "Comedy", "Comedy", "Horror", "Horror"}),
		dataset.NewNumeric("rating", []float64{10, 10, 12, 12, 14, 14}),
	)
	require.NoError(t, err)

	model, err := Fit(ds, "rating", []string{"genre"})
	require.NoError(t, err)

	require.InDelta(t, 10.0, model.Intercept().Coefficient, 1e-9)

	comedy, ok := model.Term("genre=Comedy")
	require.True(t, ok)
	require.InDelta(t, 2.0, comedy.Coefficient, 1e-9)

	horror, ok := model.Term("genre=Horror")
	require.True(t, ok)
	require.InDelta(t, 4.0, horror.Coefficient, 1e-9)
}

func TestFitCategoricalReferenceShift(t *testing.T) {
	ds, err := dataset.New(
		dataset.NewCategorical("genre", []string{"Drama", "Drama", "Comedy", "Comedy"}),
		dataset.NewNumeric("rating", []float64{10, 10, 12, 12}),
	)
	require.NoError(t, err)

	// Same data, Comedy as baseline: the Drama offset flips sign.
	ds, err = ds.WithReference("genre", "Comedy")
	require.NoError(t, err)

	model, err := Fit(ds, "rating", []string{"genre"})
	require.NoError(t, err)

	require.InDelta(t, 12.0, model.Intercept().Coefficient, 1e-9)
	drama, ok := model.Term("genre=Drama")
	require.True(t, ok)
	require.InDelta(t, -2.0, drama.Coefficient, 1e-9)
}

func TestFitCoefficientRecoveryWithNoise(t *testing.T) {
	// y = 4 + 0.03*critics + 0.002*runtime + noise; a large sample should
	// recover the generating coefficients within a loose tolerance.
	rng := rand.New(rand.NewSource(42))
	n := 5000
	critics := make([]float64, n)
	runtime := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		critics[i] = rng.Float64() * 100
		runtime[i] = 80 + rng.Float64()*80
		y[i] = 4 + 0.03*critics[i] + 0.002*runtime[i] + rng.NormFloat64()*0.2
	}

	ds, err := dataset.New(
		dataset.NewNumeric("critics_score", critics),
		dataset.NewNumeric("runtime", runtime),
		dataset.NewNumeric("imdb_rating", y),
	)
	require.NoError(t, err)

	model, err := Fit(ds, "imdb_rating", []string{"critics_score", "runtime"})
	require.NoError(t, err)

	require.InDelta(t, 4.0, model.Intercept().Coefficient, 0.1)
	tc, _ := model.Term("critics_score")
	tr, _ := model.Term("runtime")
	require.InDelta(t, 0.03, tc.Coefficient, 0.005)
	require.InDelta(t, 0.002, tr.Coefficient, 0.001)

	// The signal coefficients should be clearly significant at this n.
	require.Less(t, tc.PValue, 0.001)
	require.Greater(t, tc.StdErr, 0.0)
}

func TestFitAdjustedRSquaredFormula(t *testing.T) {
	x1 := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	x2 := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.1, 12.2, 13.8, 16.1}

	ds, err := dataset.New(
		dataset.NewNumeric("x1", x1),
		dataset.NewNumeric("x2", x2),
		dataset.NewNumeric("y", y),
	)
	require.NoError(t, err)

	model, err := Fit(ds, "y", []string{"x1", "x2"})
	require.NoError(t, err)

	n := float64(model.NumObservations())
	p := float64(model.NumCoefficients())
	want := 1 - (1-model.RSquared())*(n-1)/(n-p-1)
	require.InDelta(t, want, model.AdjRSquared(), 1e-12)
}

func TestFitSingularDesign(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	x2 := []float64{2, 4, 6, 8, 10} // perfectly collinear with x
	y := []float64{1, 2, 2, 3, 4}

	ds, err := dataset.New(
		dataset.NewNumeric("x", x),
		dataset.NewNumeric("x2", x2),
		dataset.NewNumeric("y", y),
	)
	require.NoError(t, err)

	_, err = Fit(ds, "y", []string{"x", "x2"})
	require.ErrorIs(t, err, ErrModelFit)
}

func TestFitConstantPredictor(t *testing.T) {
	// A constant predictor duplicates the intercept column.
	ds, err := dataset.New(
		dataset.NewNumeric("c", []float64{7, 7, 7, 7, 7}),
		dataset.NewNumeric("y", []float64{1, 2, 3, 4, 5}),
	)
	require.NoError(t, err)

	_, err = Fit(ds, "y", []string{"c"})
	require.ErrorIs(t, err, ErrModelFit)
}

func TestFitInputValidation(t *testing.T) {
	ds, err := dataset.New(
		dataset.NewNumeric("x", []float64{1, 2, 3, 4}),
		dataset.NewNumeric("y", []float64{1, 2, 3, 4}),
		dataset.NewNumeric("holey", []float64{1, math.NaN(), 3, 4}),
		dataset.NewCategorical("g", []string{"a", "b", "a", "b"}),
	)
	require.NoError(t, err)

	_, err = Fit(ds, "y", nil)
	require.ErrorIs(t, err, dataset.ErrInvalidInput)

	_, err = Fit(ds, "y", []string{"y"})
	require.ErrorIs(t, err, dataset.ErrInvalidInput)

	_, err = Fit(ds, "g", []string{"x"})
	require.ErrorIs(t, err, dataset.ErrInvalidInput)

	_, err = Fit(ds, "y", []string{"holey"})
	require.ErrorIs(t, err, dataset.ErrInvalidInput)

	_, err = Fit(ds, "y", []string{"nope"})
	require.ErrorIs(t, err, dataset.ErrInvalidInput)
}

func TestFitInsufficientObservations(t *testing.T) {
	ds, err := dataset.New(
		dataset.NewNumeric("x", []float64{1, 2}),
		dataset.NewNumeric("y", []float64{3, 5}),
	)
	require.NoError(t, err)

	// n=2, p=1 leaves zero residual degrees of freedom.
	_, err = Fit(ds, "y", []string{"x"})
	require.ErrorIs(t, err, ErrModelFit)
}
