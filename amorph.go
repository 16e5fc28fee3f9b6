package amorph

import "github.com/amorphlab/amorph/engine"

// oneShot collects construction and call options for a single throwaway
// engine invocation.
type oneShot struct {
	engineOpts []engine.Option
	callOpts   []engine.CallOption
}

// Option configures a one-shot operation.
type Option func(*oneShot)

// WithSeed makes the one-shot call deterministic. Without it every call
// gets fresh random state.
func WithSeed(seed int64) Option {
	return func(o *oneShot) {
		o.engineOpts = append(o.engineOpts, engine.WithSeed(seed))
	}
}

// WithConfig replaces the default configuration for the call.
func WithConfig(cfg engine.Config) Option {
	return func(o *oneShot) {
		o.engineOpts = append(o.engineOpts, engine.WithConfig(cfg))
	}
}

// WithFluidity overrides the default fluidity for the call.
func WithFluidity(f float64) Option {
	return func(o *oneShot) {
		o.callOpts = append(o.callOpts, engine.WithFluidity(f))
	}
}

// WithDistortion overrides the anamorphous-base distortion factor.
func WithDistortion(d float64) Option {
	return func(o *oneShot) {
		o.callOpts = append(o.callOpts, engine.WithDistortion(d))
	}
}

// WithReconstruction overrides the anamorphous-modulus reconstruction factor.
func WithReconstruction(r float64) Option {
	return func(o *oneShot) {
		o.callOpts = append(o.callOpts, engine.WithReconstruction(r))
	}
}

func apply(opts []Option) *oneShot {
	o := &oneShot{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AmorphousBase performs one amorphous base conversion on a throwaway
// engine.
func AmorphousBase(value, base float64, opts ...Option) (float64, error) {
	o := apply(opts)
	return engine.New(o.engineOpts...).AmorphousBase(value, base, o.callOpts...)
}

// AmorphousModulus performs one amorphous modulus on a throwaway engine.
func AmorphousModulus(dividend, divisor float64, opts ...Option) (float64, error) {
	o := apply(opts)
	return engine.New(o.engineOpts...).AmorphousModulus(dividend, divisor, o.callOpts...)
}

// AnamorphousBase performs one anamorphous base operation on a throwaway
// engine.
func AnamorphousBase(value, base float64, opts ...Option) (float64, error) {
	o := apply(opts)
	return engine.New(o.engineOpts...).AnamorphousBase(value, base, o.callOpts...)
}

// AnamorphousModulus performs one anamorphous modulus on a throwaway
// engine.
func AnamorphousModulus(dividend, divisor float64, opts ...Option) (float64, error) {
	o := apply(opts)
	return engine.New(o.engineOpts...).AnamorphousModulus(dividend, divisor, o.callOpts...)
}
