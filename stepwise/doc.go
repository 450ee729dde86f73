// Package stepwise implements greedy forward selection of regression
// predictors by adjusted R².
//
// Starting from an empty model, each round fits one candidate model per
// unselected predictor and accepts the best-scoring one while it keeps
// improving on the running threshold. The returned trajectory records each
// accepted predictor together with the adjusted R² it achieved:
//
//	result, err := stepwise.Select(ds, "imdb_rating",
//	    []string{"critics_score", "audience_score", "runtime", "genre"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result) // Selection{imdb_rating ~ audience_score (0.7523) + ...}
//
// Candidate fits within a round are independent of each other; the selector
// evaluates them sequentially because the datasets in this domain are small
// enough that each full run completes interactively.
package stepwise
