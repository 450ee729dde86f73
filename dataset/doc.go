// Package dataset provides the in-memory table consumed by the fitting and
// testing packages: rows of observations across semantically typed columns.
//
// Columns are either numeric (float64, NaN marks missing) or categorical
// (string labels over a finite level set with a designated reference level).
// The reference level is fixed before fitting and determines how a model's
// coefficients for that column are interpreted.
//
// Datasets are immutable. Cleaning and recoding are expressed as pure
// transformation steps, each returning a new dataset:
//
//	ds, _ := dataset.FromCSV(f, schema)
//	ds, _ = ds.DropMissing()
//	ds, _ = ds.Recode("mpaa_rating", map[string]string{"NC-17": "R"})
//	ds, _ = ds.Bucketize("thtr_rel_year",
//	    []float64{1979.5, 1999.5}, []string{"classic", "nineties", "modern"}, "era")
//	ds, _ = ds.WithReference("genre", "Drama")
//
// Model fitting requires a dataset with no missing values in the involved
// columns; DropMissing establishes that invariant for the whole table.
package dataset
