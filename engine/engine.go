package engine

import (
	"fmt"
	"math"

	"github.com/amorphlab/amorph/errors"
)

// Saturation value substituted when the anamorphous exponentiation
// overflows. The sign follows the inner amorphous result.
const overflowSaturation = 1e6

// Defaults for the anamorphous second-pass factors.
const (
	defaultDistortionFactor     = 0.5
	defaultReconstructionFactor = 0.3
)

// Engine evaluates the four amorphous operations against one owned noise
// source and one owned ledger. An Engine is NOT safe for concurrent use:
// draw order and ledger appends are the reproducibility contract, so
// callers serialize access or use one engine per goroutine. Distinct
// engines are fully independent.
type Engine struct {
	src    *Source
	ledger *Ledger
	cfg    Config
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithSeed makes the engine's noise source fully deterministic. Two engines
// built with the same seed produce bit-identical result sequences for
// identical call sequences.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.src = NewSource(seed)
	}
}

// WithConfig replaces the default configuration. DefaultFluidity is
// re-clamped at construction.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithSource attaches an explicit noise source. Prefer WithSeed for
// reproducible runs.
func WithSource(src *Source) Option {
	return func(e *Engine) {
		e.src = src
	}
}

// New constructs an engine. Without WithSeed or WithSource the noise source
// self-initializes from system entropy and is not reproducible across runs.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:    DefaultConfig(),
		ledger: &Ledger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.src == nil {
		e.src = NewEntropySource()
	}
	e.cfg.DefaultFluidity = ValidateFluidity(e.cfg.DefaultFluidity)
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// History returns a copy of the operation ledger.
func (e *Engine) History() []Entry {
	return e.ledger.History()
}

// ClearHistory empties the ledger without resetting the noise source.
func (e *Engine) ClearHistory() {
	e.ledger.Clear()
}

// Stats returns summary statistics over the ledger.
func (e *Engine) Stats() Stats {
	return e.ledger.Stats()
}

// callParams holds the per-call factors after defaulting and clamping.
type callParams struct {
	fluidity       float64
	distortion     float64
	reconstruction float64
}

// CallOption overrides a per-call factor.
type CallOption func(*callParams)

// WithFluidity overrides the configuration's default fluidity for one call.
// Out-of-range values are clamped with a warning.
func WithFluidity(f float64) CallOption {
	return func(p *callParams) {
		p.fluidity = f
	}
}

// WithDistortion overrides the anamorphous-base distortion factor
// (default 0.5). Out-of-range values are clamped silently.
func WithDistortion(d float64) CallOption {
	return func(p *callParams) {
		p.distortion = d
	}
}

// WithReconstruction overrides the anamorphous-modulus reconstruction
// factor (default 0.3). Out-of-range values are clamped silently.
func WithReconstruction(r float64) CallOption {
	return func(p *callParams) {
		p.reconstruction = r
	}
}

func (e *Engine) resolve(opts []CallOption) callParams {
	p := callParams{
		fluidity:       e.cfg.DefaultFluidity,
		distortion:     defaultDistortionFactor,
		reconstruction: defaultReconstructionFactor,
	}
	for _, opt := range opts {
		opt(&p)
	}
	// Fluidity warns on clamp; the second-pass factors do not.
	p.fluidity = ValidateFluidity(p.fluidity)
	p.distortion = clampUnit(p.distortion)
	p.reconstruction = clampUnit(p.reconstruction)
	return p
}

// AmorphousBase computes the logarithm of value in a base perturbed by one
// Gaussian draw scaled by fluidity. The perturbed base is floored at
// Config.MinBase. Negative values follow the signed-log convention
// -ln(|value|)/ln(effectiveBase). A zero value short-circuits to 0 without
// consuming a draw.
func (e *Engine) AmorphousBase(value, base float64, opts ...CallOption) (float64, error) {
	if base <= 1 {
		return 0, errors.InvalidBase(base)
	}
	p := e.resolve(opts)

	if value == 0 {
		e.ledger.record(OpBase, map[string]float64{
			"value":          0,
			"base":           base,
			"fluidity":       p.fluidity,
			"effective_base": base,
		}, 0)
		return 0, nil
	}

	variation := e.src.Normal(0, p.fluidity*base)
	effectiveBase := math.Max(e.cfg.MinBase, base+variation)

	result := math.Log(math.Abs(value)) / math.Log(effectiveBase)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, errors.DegenerateLog(effectiveBase,
			fmt.Errorf("ln(|%v|)/ln(%v) is not finite", value, effectiveBase))
	}
	if value < 0 {
		result = -result
	}

	e.ledger.record(OpBase, map[string]float64{
		"value":          value,
		"base":           base,
		"fluidity":       p.fluidity,
		"effective_base": effectiveBase,
	}, result)
	return result, nil
}

// AmorphousModulus computes dividend mod divisor against a divisor
// perturbed by one Gaussian draw, with a bounded oscillatory smoothing of
// the fractional remainder. Perturbed divisors smaller in magnitude than
// Config.PrecisionThreshold are snapped to the threshold with the sign of
// the original divisor.
func (e *Engine) AmorphousModulus(dividend, divisor float64, opts ...CallOption) (float64, error) {
	if divisor == 0 {
		return 0, errors.ZeroDivisor()
	}
	p := e.resolve(opts)

	variation := e.src.Normal(0, p.fluidity*math.Abs(divisor))
	effectiveDivisor := divisor + variation
	if math.Abs(effectiveDivisor) < e.cfg.PrecisionThreshold {
		effectiveDivisor = math.Copysign(e.cfg.PrecisionThreshold, divisor)
	}

	quotient := dividend / effectiveDivisor
	fractional := quotient - math.Trunc(quotient)
	// Bounded in [1-fluidity, 1+fluidity].
	smoothing := 1 + p.fluidity*math.Sin(quotient*math.Pi)
	result := fractional * effectiveDivisor * smoothing

	e.ledger.record(OpModulus, map[string]float64{
		"dividend":          dividend,
		"divisor":           divisor,
		"fluidity":          p.fluidity,
		"effective_divisor": effectiveDivisor,
		"smoothing_factor":  smoothing,
	}, result)
	return result, nil
}

// AnamorphousBase applies AmorphousBase, then un-does the base transform by
// exponentiation under a second Gaussian distortion draw. The nested call
// draws first and records its own ledger entry, so one AnamorphousBase call
// consumes two draws and appends two entries. Overflow saturates at ±1e6
// instead of propagating an error.
func (e *Engine) AnamorphousBase(value, base float64, opts ...CallOption) (float64, error) {
	p := e.resolve(opts)

	inner, err := e.AmorphousBase(value, base, WithFluidity(p.fluidity))
	if err != nil {
		return 0, err
	}
	distortion := e.src.Normal(1, p.fluidity*p.distortion)

	var result float64
	if base > 0 {
		result = powOrSaturate(base, inner, distortion)
	} else {
		result = inner * distortion
	}

	e.ledger.record(OpAnamorphicBase, map[string]float64{
		"value":             value,
		"base":              base,
		"fluidity":          p.fluidity,
		"distortion_factor": p.distortion,
		"amorphous_result":  inner,
	}, result)
	return result, nil
}

// powOrSaturate raises base to inner*distortion, substituting the
// saturation constant when the result is not finite. The sign follows the
// inner amorphous result, not the distorted exponent.
func powOrSaturate(base, inner, distortion float64) float64 {
	result := math.Pow(base, inner*distortion)
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return math.Copysign(overflowSaturation, inner)
	}
	return result
}

// AnamorphousModulus applies AmorphousModulus, then reconstructs an
// affine approximation of the dividend: trunc(dividend/divisor)*divisor
// plus the distorted amorphous remainder. Like AnamorphousBase it consumes
// two draws and appends two ledger entries per call.
func (e *Engine) AnamorphousModulus(dividend, divisor float64, opts ...CallOption) (float64, error) {
	p := e.resolve(opts)

	inner, err := e.AmorphousModulus(dividend, divisor, WithFluidity(p.fluidity))
	if err != nil {
		return 0, err
	}
	distortion := e.src.Normal(1, p.fluidity*p.reconstruction)

	var result float64
	if divisor != 0 {
		quotient := math.Trunc(dividend / divisor)
		result = quotient*divisor + inner*distortion
	} else {
		result = inner * distortion
	}

	e.ledger.record(OpAnamorphicModulus, map[string]float64{
		"dividend":              dividend,
		"divisor":               divisor,
		"fluidity":              p.fluidity,
		"reconstruction_factor": p.reconstruction,
		"amorphous_result":      inner,
	}, result)
	return result, nil
}

// Batch applies op to each value in order against one fixed operand (the
// base for the base operations, the divisor for the modulus operations)
// using this engine, so draw order and ledger accumulation persist across
// the batch. The first per-element error aborts the batch.
func (e *Engine) Batch(op Op, values []float64, operand float64, opts ...CallOption) ([]float64, error) {
	if !op.valid() {
		return nil, errors.UnknownOperation(op.String())
	}

	results := make([]float64, 0, len(values))
	for _, v := range values {
		var (
			r   float64
			err error
		)
		switch op {
		case OpBase:
			r, err = e.AmorphousBase(v, operand, opts...)
		case OpModulus:
			r, err = e.AmorphousModulus(v, operand, opts...)
		case OpAnamorphicBase:
			r, err = e.AnamorphousBase(v, operand, opts...)
		case OpAnamorphicModulus:
			r, err = e.AnamorphousModulus(v, operand, opts...)
		}
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}
