// Package amorph provides amorphous arithmetic: deterministic mathematical
// operations (logarithmic base conversion, modular reduction) perturbed by
// controlled pseudo-random noise, plus anamorphous variants that apply a
// second distortion/reconstruction pass over the first result. Outputs stay
// mathematically anchored to the nominal operation but vary continuously
// and, when seeded, reproducibly.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	amorph/              Root package: stateless one-shot operations
//	├── engine/          Arithmetic engine, config, noise source, ledger
//	├── errors/          Structured error types
//	├── cmd/amorph/      CLI with batch and interactive modes
//	└── examples/        Runnable demos
//
// # Quick Start
//
// One-shot, each call uses a throwaway engine:
//
//	r, err := amorph.AmorphousBase(100, 10, amorph.WithSeed(42))
//
// Chained operations share one engine so that draw order and the operation
// ledger persist across calls:
//
//	eng := engine.New(engine.WithSeed(42))
//	r1, _ := eng.AmorphousBase(100, 10)
//	r2, _ := eng.AnamorphousModulus(17, 5)
//	stats := eng.Stats()
//
// # Determinism
//
// Two engines constructed with the same seed produce bit-identical result
// sequences for identical call sequences. Without a seed the noise source
// initializes from system entropy and runs are not reproducible.
//
// # Thread Safety
//
// An engine instance is NOT safe for concurrent use; give each goroutine
// its own engine or serialize access externally. Distinct engines are fully
// independent. The one-shot functions in this package construct a fresh
// engine per call and are safe to invoke concurrently.
//
// # Caveats
//
// This is not a cryptographically secure generator: an adversary who knows
// the seed and the formulas can predict every output. It is also not a
// general statistics or RNG library, and not a vectorized numeric kernel.
package amorph
