package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildMovies(t *testing.T) *Dataset {
	t.Helper()

	ds, err := New(
		NewNumeric("year", []float64{1975, 1989, 1994, 2005, 2012, math.NaN()}),
		NewNumeric("rating", []float64{7.2, 6.1, 8.8, 5.9, 7.5, 6.6}),
		NewCategorical("genre", []string{"Drama", "Comedy", "Drama", "Horror", "Comedy", "Drama"}),
	)
	require.NoError(t, err)

	return ds
}

func TestTransformsLeaveOriginalUntouched(t *testing.T) {
	ds := buildMovies(t)

	_, err := ds.Drop("genre")
	require.NoError(t, err)
	_, err = ds.Filter(func(r Row) bool { v, _ := r.Number("rating"); return v > 7 })
	require.NoError(t, err)

	// The receiver is unchanged by pipeline steps.
	require.Equal(t, 6, ds.NumRows())
	require.Equal(t, []string{"year", "rating", "genre"}, ds.Names())
}

func TestSelectAndDrop(t *testing.T) {
	ds := buildMovies(t)

	sel, err := ds.Select("rating", "genre")
	require.NoError(t, err)
	require.Equal(t, []string{"rating", "genre"}, sel.Names())

	_, err = ds.Select("nope")
	require.ErrorIs(t, err, ErrInvalidInput)

	dropped, err := ds.Drop("year", "not_there")
	require.NoError(t, err)
	require.Equal(t, []string{"rating", "genre"}, dropped.Names())
}

func TestFilterPreservesReference(t *testing.T) {
	ds := buildMovies(t)
	ds, err := ds.WithReference("genre", "Comedy")
	require.NoError(t, err)

	kept, err := ds.Filter(func(r Row) bool {
		g, _ := r.Label("genre")
		return g != "Horror"
	})
	require.NoError(t, err)
	require.Equal(t, 5, kept.NumRows())

	cat, err := kept.Categorical("genre")
	require.NoError(t, err)
	require.Equal(t, "Comedy", cat.Reference())
	require.False(t, cat.HasLevel("Horror"))
}

func TestRecode(t *testing.T) {
	ds := buildMovies(t)

	recoded, err := ds.Recode("genre", map[string]string{"Horror": "Other", "Comedy": "Other"})
	require.NoError(t, err)

	cat, err := recoded.Categorical("genre")
	require.NoError(t, err)
	require.Equal(t, []string{"Drama", "Other"}, cat.Levels())
	require.Equal(t, "Drama", cat.Reference())

	_, err = ds.Recode("rating", nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecodeMapsReference(t *testing.T) {
	ds := buildMovies(t)

	recoded, err := ds.Recode("genre", map[string]string{"Drama": "Serious"})
	require.NoError(t, err)

	cat, err := recoded.Categorical("genre")
	require.NoError(t, err)
	require.Equal(t, "Serious", cat.Reference())
}

func TestWithReference(t *testing.T) {
	ds := buildMovies(t)

	_, err := ds.WithReference("genre", "Western")
	require.ErrorIs(t, err, ErrInvalidInput)

	ds2, err := ds.WithReference("genre", "Horror")
	require.NoError(t, err)
	cat, err := ds2.Categorical("genre")
	require.NoError(t, err)
	require.Equal(t, "Horror", cat.Reference())
	require.Equal(t, []string{"Drama", "Comedy"}, cat.NonReferenceLevels())
}

func TestBucketize(t *testing.T) {
	ds := buildMovies(t)

	out, err := ds.Bucketize("year",
		[]float64{1979.5, 1999.5}, []string{"classic", "nineties", "modern"}, "era")
	require.NoError(t, err)

	cat, err := out.Categorical("era")
	require.NoError(t, err)
	require.Equal(t, []string{"classic", "nineties", "modern", ""}, []string{
		cat.At(0), cat.At(2), cat.At(3), cat.At(5),
	})
	// NaN input stays missing in the derived column.
	require.True(t, cat.HasMissing())
}

func TestBucketizeBoundaryIsRightClosed(t *testing.T) {
	ds, err := New(NewNumeric("v", []float64{10, 10.0001, 20, 20.5}))
	require.NoError(t, err)

	out, err := ds.Bucketize("v", []float64{10, 20}, []string{"low", "mid", "high"}, "band")
	require.NoError(t, err)

	cat, err := out.Categorical("band")
	require.NoError(t, err)
	require.Equal(t, "low", cat.At(0))  // exactly at the first break
	require.Equal(t, "mid", cat.At(1))  // just above it
	require.Equal(t, "mid", cat.At(2))  // exactly at the second break
	require.Equal(t, "high", cat.At(3)) // above the last break
}

func TestBucketizeValidation(t *testing.T) {
	ds := buildMovies(t)

	_, err := ds.Bucketize("year", []float64{2000, 1990}, []string{"a", "b", "c"}, "era")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ds.Bucketize("year", []float64{1990}, []string{"a"}, "era")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ds.Bucketize("genre", []float64{1}, []string{"a", "b"}, "era")
	require.ErrorIs(t, err, ErrInvalidInput)
}
