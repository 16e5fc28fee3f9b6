// Package errors provides structured error types for the amorph library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: the offending parameter, its value, and a cause chain.
//
// Use convenience constructors for common patterns:
//
//	err := errors.InvalidBase(0.5)
//	err := errors.ZeroDivisor()
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
