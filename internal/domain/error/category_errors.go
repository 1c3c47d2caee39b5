// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidCategoryType is returned when the category type is invalid.
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrInvalidCategoryName is returned when the category name is empty or too long.
	ErrInvalidCategoryName = errors.New("invalid category name")

	// ErrCategoryTypeMismatch is returned when a node's type differs from its
	// parent's and subtree type homogeneity is enforced.
	ErrCategoryTypeMismatch = errors.New("category type differs from parent type")

	// ErrCycleDetected is returned when a move would make a node its own descendant.
	ErrCycleDetected = errors.New("move would create a cycle")

	// ErrCategoryNotEmpty is returned when a category with children is deleted under the reject policy.
	ErrCategoryNotEmpty = errors.New("category has children")

	// ErrCategoryInUse is returned when a deleted category is still referenced by transfer items.
	ErrCategoryInUse = errors.New("category is referenced by transfer items")

	// ErrInvalidDeletePolicy is returned when an unknown delete policy is requested.
	ErrInvalidDeletePolicy = errors.New("invalid delete policy")

	// ErrParentNotFound is returned when the requested parent category does not exist.
	ErrParentNotFound = errors.New("parent category not found")

	// ErrNotAuthorizedToModifyCategory is returned when a user touches a category they do not own.
	ErrNotAuthorizedToModifyCategory = errors.New("not authorized to modify category")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is the category and YYYY the specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryTypeMismatch  CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010003"
	ErrCodeParentNotFound        CategoryErrorCode = "CAT-010004"
	ErrCodeInvalidDeletePolicy   CategoryErrorCode = "CAT-010005"
	ErrCodeNotAuthorizedCategory CategoryErrorCode = "CAT-010006"
	ErrCodeInvalidCategoryName   CategoryErrorCode = "CAT-010007"

	// Structural errors (02XXXX)
	ErrCodeCycleDetected    CategoryErrorCode = "CAT-020001"
	ErrCodeCategoryNotEmpty CategoryErrorCode = "CAT-020002"
	ErrCodeCategoryInUse    CategoryErrorCode = "CAT-020003"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
