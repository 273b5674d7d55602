// Package errors provides error handling for schemagen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints for CLI output
//
// It also defines the sentinel errors of the generator pipeline. Structured
// error types in catalog, render and codegen/messages unwrap to one of these
// sentinels so callers can classify a failure with errors.Is:
//
//	if errors.Is(err, errors.ErrDuplicateMember) {
//	    // a child message redeclares an inherited member
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails

	GetReportableStackTrace = crdb.GetReportableStackTrace
)

// Sentinel errors of the generation pipeline.
var (
	// ErrLoad indicates a definitions or version file is missing, unreadable or malformed
	ErrLoad = New("load error")

	// ErrSchema indicates a catalog document lacks required substructure
	ErrSchema = New("schema error")

	// ErrUnknownParent indicates a message names a parent absent from the catalog
	ErrUnknownParent = New("unknown parent")

	// ErrCyclicInheritance indicates a message parent chain loops back on itself
	ErrCyclicInheritance = New("cyclic inheritance")

	// ErrDuplicateMember indicates a message redeclares a member of an ancestor
	ErrDuplicateMember = New("duplicate member")

	// ErrInvalidDescriptor indicates a member descriptor key outside the allowed kinds
	ErrInvalidDescriptor = New("invalid descriptor")

	// ErrRender indicates the renderer failed to produce an artifact
	ErrRender = New("render error")
)

// IsLoadError checks if an error is or wraps ErrLoad or ErrSchema.
// Both abort a run before any generator produces output.
func IsLoadError(err error) bool {
	return err != nil && IsAny(err, ErrLoad, ErrSchema)
}

// IsValidationError checks if an error is one of the message inheritance
// validation failures.
func IsValidationError(err error) bool {
	return err != nil && IsAny(err,
		ErrUnknownParent,
		ErrCyclicInheritance,
		ErrDuplicateMember,
		ErrInvalidDescriptor,
	)
}

// IsRenderError checks if an error is or wraps ErrRender
func IsRenderError(err error) bool {
	return err != nil && Is(err, ErrRender)
}
