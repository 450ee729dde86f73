// Package regress fits ordinary-least-squares linear models on datasets with
// numeric and categorical predictors.
//
// Categorical predictors are expanded into indicator columns for every level
// other than the column's reference level, so each indicator coefficient
// reads as that level's offset from the baseline. Fitted models report R²,
// adjusted R², per-term standard errors, t statistics and p-values, and
// retain what they need to produce prediction intervals for new
// observations:
//
//	model, err := regress.Fit(ds, "imdb_rating", []string{"critics_score", "genre"})
//	if err != nil {
//	    return err
//	}
//
//	pred, err := model.Predict(regress.Observation{
//	    "critics_score": 85.0,
//	    "genre":         "Drama",
//	}, 0.95)
//
// Numerical degeneracy (a singular design from collinear or constant
// predictors) fails the fit with ErrModelFit; it is never papered over with
// a pseudo-inverse. Predicting on a categorical label unseen at fit time
// fails with ErrUnknownLevel rather than silently defaulting.
package regress
