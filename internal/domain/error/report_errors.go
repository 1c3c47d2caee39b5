// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Report domain errors.
var (
	// ErrReportNotFound is returned when a saved report spec is not found.
	ErrReportNotFound = errors.New("report not found")

	// ErrInvalidReportKind is returned when the report kind is invalid.
	ErrInvalidReportKind = errors.New("invalid report kind")

	// ErrInvalidPeriod is returned when the period specification is invalid,
	// e.g. a selected period without explicit start and end dates.
	ErrInvalidPeriod = errors.New("invalid period specification")

	// ErrInvalidPeriodDivision is returned when the flow bucket division is invalid.
	ErrInvalidPeriodDivision = errors.New("invalid period division")

	// ErrInvalidBalanceAlgorithm is returned when the balance algorithm is invalid.
	ErrInvalidBalanceAlgorithm = errors.New("invalid balance algorithm")

	// ErrEmptyCategorySelection is returned when a report selects no categories.
	ErrEmptyCategorySelection = errors.New("report requires at least one category selection")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is the category and YYYY the specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidReportKind       ReportErrorCode = "RPT-010001"
	ErrCodeInvalidPeriod           ReportErrorCode = "RPT-010002"
	ErrCodeInvalidPeriodDivision   ReportErrorCode = "RPT-010003"
	ErrCodeInvalidBalanceAlgorithm ReportErrorCode = "RPT-010004"
	ErrCodeEmptyCategorySelection  ReportErrorCode = "RPT-010005"
	ErrCodeReportNotFound          ReportErrorCode = "RPT-010006"

	// Generation errors (02XXXX)
	ErrCodeReportRateMissing ReportErrorCode = "RPT-020001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
