package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across schemagen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldGenerator = "generator"

	// Definitions
	FieldEntity   = "entity"
	FieldTemplate = "template"
	FieldCatalog  = "catalog"

	// Files and paths
	FieldPath       = "path"
	FieldOutputRoot = "output_root"

	// Versions
	FieldVersion   = "version"
	FieldCanonical = "canonical"
	FieldStamp     = "stamp"
	FieldBump      = "bump"

	// Run bookkeeping
	FieldRunID      = "run_id"
	FieldStale      = "stale"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	agg := codegen.NewAggregator(codegen.Options{
//	    Logger: logger.ComponentLogger("codegen"),
//	})
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}
