// Package errors provides structured error types for the offload runtime.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the signature slot, the data type name and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
//		Arg(3).
//		Type("void").
//		Detail("weak scalar of %d bytes exceeds inline capacity", 12).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidArgument(errors.PhaseBuild, errors.NoArg, "nil signature")
//	err := errors.UnknownType(errors.PhaseValue, "type(42)")
//
// All errors implement the standard error interface and support errors.Is/As.
// ErrInvalidArgument and ErrUnknownType match their kind from any phase.
package errors
