// Package errors provides centralized error definitions for the dashboard.
// Errors are organized by component to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Dataset errors.
var (
	// ErrLoad indicates the dataset file is missing, malformed or empty.
	// It is fatal at startup.
	ErrLoad = errors.New("dataset load failed")

	// ErrUnknownColumn indicates a column name that the loaded table does not carry.
	ErrUnknownColumn = errors.New("unknown column")
)

// Render errors.
var (
	// ErrEmptyResult indicates a filter combination matched zero rows.
	// It is a warning: statistics report as missing and charts render empty.
	ErrEmptyResult = errors.New("filters matched no rows")

	// ErrUnknownPage indicates a page selector value outside the supported pages.
	ErrUnknownPage = errors.New("unknown page")

	// ErrUnknownMapVariable indicates an unsupported variable for the coverage map.
	ErrUnknownMapVariable = errors.New("unknown map variable")

	// ErrUnknownChart indicates a chart name the current page does not produce.
	ErrUnknownChart = errors.New("unknown chart")

	// ErrUnsupportedFormat indicates an image or export format that cannot be rendered.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Validation errors.
var (
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
