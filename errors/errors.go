package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValidate Phase = "validate" // input domain checks
	PhaseCompute  Phase = "compute"  // numeric evaluation
	PhaseDispatch Phase = "dispatch" // batch operation selection
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidBase      Kind = "invalid_base"
	KindZeroDivisor      Kind = "zero_divisor"
	KindDegenerateLog    Kind = "degenerate_log"
	KindUnknownOperation Kind = "unknown_operation"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Param  string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Param != "" {
		b.WriteString(" for ")
		b.WriteString(e.Param)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// InvalidBase creates a validation error for a logarithm base outside the
// valid domain (base must exceed 1).
func InvalidBase(base float64) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidBase,
		Param:  "base",
		Detail: fmt.Sprintf("base must be > 1, got %v", base),
		Value:  base,
	}
}

// ZeroDivisor creates a validation error for a zero modulus divisor.
func ZeroDivisor() *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindZeroDivisor,
		Param:  "divisor",
		Detail: "divisor must be non-zero",
	}
}

// DegenerateLog creates a compute error for a logarithm evaluation that
// produced a non-finite result.
func DegenerateLog(effectiveBase float64, cause error) *Error {
	return &Error{
		Phase:  PhaseCompute,
		Kind:   KindDegenerateLog,
		Param:  "effective_base",
		Detail: fmt.Sprintf("logarithm degenerate at effective base %v", effectiveBase),
		Value:  effectiveBase,
		Cause:  cause,
	}
}

// UnknownOperation creates a dispatch error for an operation name outside
// the closed operation set.
func UnknownOperation(name string) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindUnknownOperation,
		Param:  "operation",
		Detail: fmt.Sprintf("unknown operation %q", name),
		Value:  name,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
