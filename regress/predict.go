package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arloliu/fitwise/dataset"
	"github.com/arloliu/fitwise/format"
)

// Observation is a single new observation to predict on, mapping predictor
// names to values: float64 (or any integer type) for numeric predictors,
// string labels for categorical predictors.
type Observation map[string]any

// Prediction is a point estimate with a prediction interval: the range
// expected to contain a new individual observation's response at the stated
// confidence level, accounting for both parameter uncertainty and residual
// variance.
type Prediction struct {
	// Point is the point estimate.
	Point float64
	// Lower and Upper bound the prediction interval.
	Lower float64
	Upper float64
	// Level is the confidence level of the interval, e.g. 0.95.
	Level float64
	// StdErr is the standard error of prediction:
	// sigma * sqrt(1 + x0ᵀ(XᵀX)⁻¹x0).
	StdErr float64
}

// String returns a human-readable representation of the prediction.
func (p Prediction) String() string {
	return fmt.Sprintf("%.4g [%.4g, %.4g] @%.0f%%", p.Point, p.Lower, p.Upper, p.Level*100)
}

// Predict returns a point estimate and prediction interval for a single new
// observation at the given confidence level.
//
// Error conditions:
//   - dataset.ErrInvalidInput: level outside (0,1), a predictor absent from
//     the observation, or a value of the wrong type
//   - ErrUnknownLevel: a categorical label not seen during fitting
func (m *Model) Predict(obs Observation, level float64) (Prediction, error) {
	if level <= 0 || level >= 1 {
		return Prediction{}, fmt.Errorf("%w: confidence level %v outside (0, 1)", dataset.ErrInvalidInput, level)
	}

	numerics := make(map[string]float64, len(m.infos))
	labels := make(map[string]string, len(m.infos))

	for _, info := range m.infos {
		raw, ok := obs[info.name]
		if !ok {
			return Prediction{}, fmt.Errorf("%w: observation is missing predictor %q", dataset.ErrInvalidInput, info.name)
		}

		if info.kind == format.KindNumeric {
			v, ok := toFloat(raw)
			if !ok || math.IsNaN(v) {
				return Prediction{}, fmt.Errorf("%w: predictor %q needs a numeric value, got %T",
					dataset.ErrInvalidInput, info.name, raw)
			}
			numerics[info.name] = v

			continue
		}

		label, ok := raw.(string)
		if !ok || label == "" {
			return Prediction{}, fmt.Errorf("%w: predictor %q needs a categorical label, got %T",
				dataset.ErrInvalidInput, info.name, raw)
		}
		if !containsLevel(info.levels, label) {
			return Prediction{}, fmt.Errorf("%w: predictor %q has no level %q", ErrUnknownLevel, info.name, label)
		}
		labels[info.name] = label
	}

	// Rebuild the design row the same way the fit did.
	x0 := mat.NewVecDense(m.p+1, nil)
	x0.SetVec(0, 1)
	point := m.beta[0]
	for j, term := range m.terms {
		var v float64
		if term.Level == "" {
			v = numerics[term.Predictor]
		} else if labels[term.Predictor] == term.Level {
			v = 1
		}
		x0.SetVec(j+1, v)
		point += m.beta[j+1] * v
	}

	// SE_pred = sigma * sqrt(1 + x0ᵀ(XᵀX)⁻¹x0)
	var tmp mat.VecDense
	tmp.MulVec(m.xtxInv, x0)
	leverage := mat.Dot(x0, &tmp)
	se := math.Sqrt(m.sigma2 * (1 + leverage))

	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.DegreesOfFreedom())}
	tcrit := tdist.Quantile(0.5 + level/2)

	return Prediction{
		Point:  point,
		Lower:  point - tcrit*se,
		Upper:  point + tcrit*se,
		Level:  level,
		StdErr: se,
	}, nil
}

func containsLevel(levels []string, label string) bool {
	for _, lv := range levels {
		if lv == label {
			return true
		}
	}

	return false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}
