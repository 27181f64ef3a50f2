package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors that can occur during a batch run.
var (
	// ErrMissingCredential indicates that no oracle API key was configured.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidConfiguration indicates that configuration is invalid or
	// incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// SchemaErrorKind classifies schema violations for standardized handling.
type SchemaErrorKind int

const (
	// SchemaErrorMissingFields indicates that an oracle response lacked one
	// or more of the required evaluation fields.
	SchemaErrorMissingFields SchemaErrorKind = iota

	// SchemaErrorInvalidScore indicates that a score field was not an
	// integer in the 1-5 range.
	SchemaErrorInvalidScore

	// SchemaErrorMissingColumns indicates that the input table lacked one
	// or more required columns.
	SchemaErrorMissingColumns
)

// SchemaError represents a violation of the evaluation schema, either in an
// oracle response or in the input table layout. Response-level schema errors
// are retryable inside the scoring client; table-level ones abort the run
// before any row is processed.
type SchemaError struct {
	// Kind classifies the violation.
	Kind SchemaErrorKind

	// Fields lists the missing field or column names for the MissingFields
	// and MissingColumns kinds.
	Fields []string

	// Field names the offending score field for the InvalidScore kind.
	Field string

	// Value holds the rejected score value for the InvalidScore kind.
	Value any
}

// Error implements the error interface for SchemaError.
func (e *SchemaError) Error() string {
	switch e.Kind {
	case SchemaErrorMissingFields:
		return fmt.Sprintf("response missing required fields: %s", strings.Join(e.Fields, ", "))
	case SchemaErrorInvalidScore:
		return fmt.Sprintf("invalid score in %q: %v", e.Field, e.Value)
	case SchemaErrorMissingColumns:
		return fmt.Sprintf("input missing required columns: %s", strings.Join(e.Fields, ", "))
	default:
		return "schema error"
	}
}

// NewMissingFieldsError creates a SchemaError for an oracle response that
// lacks the given required fields.
func NewMissingFieldsError(fields []string) *SchemaError {
	return &SchemaError{Kind: SchemaErrorMissingFields, Fields: fields}
}

// NewInvalidScoreError creates a SchemaError for a score field carrying a
// value that is not an integer between 1 and 5.
func NewInvalidScoreError(field string, value any) *SchemaError {
	return &SchemaError{Kind: SchemaErrorInvalidScore, Field: field, Value: value}
}

// NewMissingColumnsError creates a SchemaError for an input table that lacks
// the given required columns.
func NewMissingColumnsError(columns []string) *SchemaError {
	return &SchemaError{Kind: SchemaErrorMissingColumns, Fields: columns}
}
