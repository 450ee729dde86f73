package regress

import "errors"

// ErrModelFit indicates a numerically degenerate fit, typically a singular
// design matrix from perfectly collinear indicator columns or a constant
// predictor. Degeneracy is terminal: callers must repair the predictor set
// rather than expect a recovered fit.
var ErrModelFit = errors.New("model fit failed")

// ErrUnknownLevel indicates a prediction against a categorical label that
// was not present in the training data. Predictions never silently default
// an unseen label to the reference level.
var ErrUnknownLevel = errors.New("unknown categorical level")
