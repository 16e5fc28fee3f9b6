package engine

import (
	"math"

	"go.uber.org/zap"
)

// Defaults for Config fields.
const (
	DefaultFluidity           = 0.1
	DefaultMinBase            = 1.1
	DefaultMaxIterations      = 1000
	DefaultPrecisionThreshold = 1e-10
)

// Config holds the tunable bounds shared by all operations of one engine
// instance. Construction never fails: DefaultFluidity is clamped into [0,1],
// every other field is stored as given.
type Config struct {
	// DefaultFluidity is used when a call does not override fluidity.
	DefaultFluidity float64
	// MinBase is the floor applied to a perturbed logarithm base. Must stay
	// above 1 for the logarithm to remain well-defined.
	MinBase float64
	// MaxIterations bounds iterative consumers such as simulations built on
	// top of the engine. The four operations themselves never loop.
	MaxIterations int
	// PrecisionThreshold is the minimum magnitude allowed for a perturbed
	// divisor before it is snapped back to avoid division blow-up.
	PrecisionThreshold float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		DefaultFluidity:    DefaultFluidity,
		MinBase:            DefaultMinBase,
		MaxIterations:      DefaultMaxIterations,
		PrecisionThreshold: DefaultPrecisionThreshold,
	}
}

// ValidateFluidity returns x unchanged when it already lies in [0,1].
// Out-of-range values are clamped with a warning, never rejected. This is
// the single normalization point for every fluidity-like parameter.
func ValidateFluidity(x float64) float64 {
	if x >= 0 && x <= 1 {
		return x
	}
	clamped := math.Min(1, math.Max(0, x))
	Logger().Warn("fluidity outside [0,1], clamping",
		zap.Float64("fluidity", x),
		zap.Float64("clamped", clamped),
	)
	return clamped
}

// clampUnit clamps x into [0,1] without a warning. Distortion and
// reconstruction factors use this silent variant; fluidity does not.
func clampUnit(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
