package stepwise

import (
	"fmt"

	"github.com/arloliu/fitwise/dataset"
	"github.com/arloliu/fitwise/internal/options"
	"github.com/arloliu/fitwise/regress"
)

// Select runs greedy forward selection of predictors for the numeric
// response column.
//
// Each round fits one model per remaining candidate on the predictors
// accepted so far plus that candidate, and takes the candidate with the
// highest adjusted R² (ties break to the earliest candidate in the given
// ordering). The winner is accepted only if its adjusted R² beats the
// running threshold; otherwise selection stops. Accepted candidates are
// never revisited, so the result is an ordered subset of the candidates and
// is deterministic for a fixed candidate ordering.
//
// Error conditions:
//   - dataset.ErrInvalidInput: empty candidates, response among candidates,
//     or missing values in an involved column
//   - regress.ErrModelFit: any candidate fit is numerically degenerate; the
//     whole run aborts with the offending candidate identified, since a fit
//     failure signals a structural problem with the candidate set that
//     selection cannot safely route around
func Select(ds *dataset.Dataset, response string, candidates []string, opts ...Option) (*Result, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidate predictors", dataset.ErrInvalidInput)
	}
	for _, c := range candidates {
		if c == response {
			return nil, fmt.Errorf("%w: response %q appears in candidates", dataset.ErrInvalidInput, response)
		}
	}

	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	var steps []Step
	selected := make([]string, 0, len(candidates))
	remaining := append([]string(nil), candidates...)
	bestScore := cfg.InitialThreshold

	for len(remaining) > 0 {
		bestIdx := -1
		bestAdjR2 := 0.0

		for i, c := range remaining {
			trial := append(append([]string(nil), selected...), c)
			model, err := regress.Fit(ds, response, trial)
			if err != nil {
				return nil, fmt.Errorf("candidate %q: %w", c, err)
			}

			// Stable argmax: strict improvement only, so earlier candidates
			// win ties.
			if bestIdx == -1 || model.AdjRSquared() > bestAdjR2 {
				bestIdx = i
				bestAdjR2 = model.AdjRSquared()
			}
		}

		if bestAdjR2 < bestScore {
			break // round winner is discarded, not appended
		}

		selected = append(selected, remaining[bestIdx])
		steps = append(steps, Step{Predictor: remaining[bestIdx], AdjR2: bestAdjR2})
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		bestScore = bestAdjR2
	}

	return &Result{response: response, steps: steps}, nil
}
