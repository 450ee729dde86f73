package stepwise

import (
	"fmt"
	"math"

	"github.com/arloliu/fitwise/dataset"
	"github.com/arloliu/fitwise/internal/options"
)

// Config holds configuration for a forward selection run.
type Config struct {
	InitialThreshold float64
}

// defaultConfig returns the default selection config.
//
// The initial threshold is 0: the first candidate is accepted only if its
// model achieves a positive adjusted R², treating the empty model's adjusted
// R² as zero by convention. Callers that want an unconditional first step
// can pass WithInitialThreshold(math.Inf(-1)).
func defaultConfig() Config {
	return Config{InitialThreshold: 0}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithInitialThreshold sets the adjusted R² the first accepted candidate
// must exceed. -Inf is legal and makes the first step unconditional; NaN is
// rejected because it would poison every comparison in the selection loop.
func WithInitialThreshold(v float64) Option {
	return options.New(func(cfg *Config) error {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: initial threshold must not be NaN", dataset.ErrInvalidInput)
		}
		cfg.InitialThreshold = v

		return nil
	})
}

// WithUnconditionalFirstStep accepts the best first-round candidate
// regardless of its adjusted R².
func WithUnconditionalFirstStep() Option {
	return WithInitialThreshold(math.Inf(-1))
}
