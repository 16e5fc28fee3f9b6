// Package engine implements the amorphous arithmetic core.
//
// An Engine owns one Gaussian noise Source and one operation Ledger and
// exposes the four perturbed operations:
//
//	AmorphousBase      - log-base conversion against a noise-perturbed base
//	AmorphousModulus   - modulus against a noise-perturbed divisor
//	AnamorphousBase    - AmorphousBase followed by a distorted exponential
//	                     reconstruction of the original value
//	AnamorphousModulus - AmorphousModulus followed by a distorted affine
//	                     reconstruction of the original dividend
//
// # Reproducibility
//
// An engine built with WithSeed is fully deterministic: the same sequence
// of calls with the same arguments yields bit-identical results and an
// identical ledger. Draw order is the contract; the anamorphous operations
// draw for their inner amorphous call first, then for their own distortion
// step, and record two ledger entries per call.
//
// # Validation
//
// Bases at or below 1 and zero divisors are rejected with structured
// validation errors. Fluidity and the distortion/reconstruction factors are
// never rejected: values outside [0,1] are clamped, with a warning for
// fluidity and silently for the second-pass factors. Overflow in the
// anamorphous exponentiation saturates at ±1e6 rather than erroring.
//
// # Thread Safety
//
// An Engine is not safe for concurrent use; callers serialize access or
// give each goroutine its own engine. Distinct engines share no state.
package engine
