// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Transfer domain errors.
var (
	// ErrTransferNotFound is returned when a transfer is not found in the system.
	ErrTransferNotFound = errors.New("transfer not found")

	// ErrUnbalancedTransfer is returned when the converted sum of items is not exactly zero.
	ErrUnbalancedTransfer = errors.New("transfer does not balance to zero")

	// ErrInsufficientItems is returned when a transfer has fewer than two items.
	ErrInsufficientItems = errors.New("transfer requires at least two items")

	// ErrUnknownCategory is returned when an item references a category that does not exist.
	ErrUnknownCategory = errors.New("unknown category reference")

	// ErrUnknownCurrency is returned when an item references a currency that does not exist.
	ErrUnknownCurrency = errors.New("unknown currency reference")

	// ErrUnknownExchangeRate is returned when a conversion references a rate that does not exist.
	ErrUnknownExchangeRate = errors.New("unknown exchange rate reference")

	// ErrNotAuthorizedToModifyTransfer is returned when a user touches a transfer they do not own.
	ErrNotAuthorizedToModifyTransfer = errors.New("not authorized to modify transfer")
)

// TransferErrorCode defines error codes for transfer errors.
// Format: TRF-XXYYYY where XX is the category and YYYY the specific error.
type TransferErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInsufficientItems     TransferErrorCode = "TRF-010001"
	ErrCodeUnknownCategory       TransferErrorCode = "TRF-010002"
	ErrCodeUnknownCurrency       TransferErrorCode = "TRF-010003"
	ErrCodeUnknownExchangeRate   TransferErrorCode = "TRF-010004"
	ErrCodeTransferNotFound      TransferErrorCode = "TRF-010005"
	ErrCodeNotAuthorizedTransfer TransferErrorCode = "TRF-010006"

	// Balance errors (02XXXX)
	ErrCodeUnbalancedTransfer TransferErrorCode = "TRF-020001"
)

// TransferError represents a transfer error with code and message.
type TransferError struct {
	Code    TransferErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransferError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransferError) Unwrap() error {
	return e.Err
}

// NewTransferError creates a new TransferError with the given code and message.
func NewTransferError(code TransferErrorCode, message string, err error) *TransferError {
	return &TransferError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
