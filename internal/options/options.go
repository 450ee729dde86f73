// Package options provides the generic functional-option plumbing shared by
// the library's configurable entry points, currently forward selection and
// snapshot encoding.
//
// A configurable entry point declares an alias for its own config type and
// builds options with New when the value needs validation, or NoError when
// it cannot fail:
//
//	type Option = options.Option[*Config]
//
//	func WithCompression(c format.CompressionType) Option {
//	    return options.New(func(cfg *Config) error {
//	        if !c.IsValid() {
//	            return fmt.Errorf("unknown compression type 0x%x", byte(c))
//	        }
//	        cfg.Compression = c
//	        return nil
//	    })
//	}
//
// Apply runs the options in order and stops at the first validation error,
// so a caller sees the bad option rather than a half-configured run.
package options

// Option configures a target of type T, typically a pointer to an
// entry point's config struct.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function into an Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New wraps a validating function as an option. The error it returns
// surfaces unchanged from Apply.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError wraps an infallible function as an option, for settings with no
// invalid values.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies the options to target in order, returning the first
// validation error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
