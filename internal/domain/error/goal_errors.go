// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidGoalType is returned when the goal type is invalid.
	ErrInvalidGoalType = errors.New("invalid goal type")

	// ErrInvalidGoalCondition is returned when the completion condition is invalid.
	ErrInvalidGoalCondition = errors.New("invalid goal completion condition")

	// ErrInvalidGoalPeriod is returned when the goal's period window is inverted or empty.
	ErrInvalidGoalPeriod = errors.New("goal period end must be after period start")

	// ErrGoalCurrencyRequired is returned when a value goal is created without a currency.
	ErrGoalCurrencyRequired = errors.New("value goal requires a currency")

	// ErrPercentGoalNeedsParent is returned when a percent goal targets a root category.
	ErrPercentGoalNeedsParent = errors.New("percent goal requires a category with a parent")

	// ErrGoalAlreadyFinished is returned when a finished goal is finished again.
	ErrGoalAlreadyFinished = errors.New("goal is already finished")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is the category and YYYY the specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidGoalType        GoalErrorCode = "GOL-010001"
	ErrCodeInvalidGoalCondition   GoalErrorCode = "GOL-010002"
	ErrCodeInvalidGoalPeriod      GoalErrorCode = "GOL-010003"
	ErrCodeGoalCurrencyRequired   GoalErrorCode = "GOL-010004"
	ErrCodePercentGoalNeedsParent GoalErrorCode = "GOL-010005"
	ErrCodeGoalNotFound           GoalErrorCode = "GOL-010006"

	// State errors (02XXXX)
	ErrCodeGoalAlreadyFinished GoalErrorCode = "GOL-020001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
