// Package fitwise provides exploratory regression modeling and categorical
// independence testing on small in-memory datasets.
//
// Fitwise covers the load → transform → fit → inspect path of a typical
// observational study: typed dataset ingestion with pure cleaning
// transforms, ordinary-least-squares fitting with categorical predictors,
// greedy forward selection of predictors by adjusted R², prediction
// intervals for new observations, and the chi-square test of independence
// for cross-tabulated survey counts.
//
// # Basic Usage
//
// Fitting a model and predicting:
//
//	schema := dataset.Schema{
//	    {Name: "imdb_rating", Kind: format.KindNumeric},
//	    {Name: "critics_score", Kind: format.KindNumeric},
//	    {Name: "genre", Kind: format.KindCategorical, Reference: "Drama"},
//	}
//	ds, _ := dataset.FromCSV(f, schema)
//	ds, _ = ds.DropMissing()
//
//	model, _ := fitwise.Fit(ds, "imdb_rating", "critics_score", "genre")
//	pred, _ := model.Predict(regress.Observation{
//	    "critics_score": 85.0,
//	    "genre":         "Comedy",
//	}, 0.95)
//	fmt.Println(pred) // 6.93 [5.28, 8.58] @95%
//
// Forward selection:
//
//	result, _ := fitwise.SelectForward(ds, "imdb_rating",
//	    "critics_score", "audience_score", "runtime", "genre")
//	fmt.Println(result.Selected())
//
// Independence testing:
//
//	table, _ := contingency.Crosstab(ds, "genre", "mpaa_rating")
//	test, _ := fitwise.ChiSquareTest(table)
//	fmt.Printf("X²=%.2f df=%d p=%.4f\n", test.Statistic, test.DF, test.PValue)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the dataset,
// regress, stepwise and contingency packages, simplifying the most common
// use cases. For fine-grained control (selection thresholds, snapshot
// persistence, custom transforms), use those packages directly.
package fitwise

import (
	"github.com/arloliu/fitwise/contingency"
	"github.com/arloliu/fitwise/dataset"
	"github.com/arloliu/fitwise/regress"
	"github.com/arloliu/fitwise/stepwise"
)

// Fit estimates an ordinary-least-squares model of the response on the given
// predictors. See regress.Fit.
func Fit(ds *dataset.Dataset, response string, predictors ...string) (*regress.Model, error) {
	return regress.Fit(ds, response, predictors)
}

// SelectForward runs greedy forward selection of predictors by adjusted R²
// with the default stopping rule. See stepwise.Select.
func SelectForward(ds *dataset.Dataset, response string, candidates ...string) (*stepwise.Result, error) {
	return stepwise.Select(ds, response, candidates)
}

// ChiSquareTest runs the chi-square test of independence on a contingency
// table. See contingency.Table.ChiSquareTest.
func ChiSquareTest(table *contingency.Table) (*contingency.TestResult, error) {
	return table.ChiSquareTest()
}
