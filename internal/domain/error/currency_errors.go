// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Currency and exchange domain errors.
var (
	// ErrCurrencyNotFound is returned when a currency is not found in the system.
	ErrCurrencyNotFound = errors.New("currency not found")

	// ErrDuplicateCurrencyCode is returned when a currency code collides within its owner scope.
	ErrDuplicateCurrencyCode = errors.New("currency code already exists")

	// ErrInvalidCurrencyCode is returned when the code is not exactly three uppercase letters.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")

	// ErrExchangeRateNotFound is returned when an exchange rate is not found in the system.
	ErrExchangeRateNotFound = errors.New("exchange rate not found")

	// ErrSameCurrencyPair is returned when both sides of an exchange rate are the same currency.
	ErrSameCurrencyPair = errors.New("exchange rate currencies must differ")

	// ErrNonPositiveRate is returned when an exchange rate is zero or negative.
	ErrNonPositiveRate = errors.New("exchange rate must be positive")

	// ErrIncompatibleCurrencies is returned when no direct or inverse rate is registered for a pair.
	ErrIncompatibleCurrencies = errors.New("no exchange rate registered for currency pair")

	// ErrNoRateFound is returned when no rate could be resolved for a date/pair even after fallback.
	ErrNoRateFound = errors.New("no applicable exchange rate found")

	// ErrExchangeRateInUse is returned when a rate referenced by a conversion would be changed or deleted.
	ErrExchangeRateInUse = errors.New("exchange rate is referenced by recorded conversions")

	// ErrCurrencyInUse is returned when a currency referenced by transfer items would be deleted.
	ErrCurrencyInUse = errors.New("currency is referenced by transfer items")
)

// CurrencyErrorCode defines error codes for currency and exchange errors.
// Format: XCH-XXYYYY where XX is the category and YYYY the specific error.
type CurrencyErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCurrencyCode   CurrencyErrorCode = "XCH-010001"
	ErrCodeDuplicateCurrencyCode CurrencyErrorCode = "XCH-010002"
	ErrCodeSameCurrencyPair      CurrencyErrorCode = "XCH-010003"
	ErrCodeNonPositiveRate       CurrencyErrorCode = "XCH-010004"
	ErrCodeCurrencyNotFound      CurrencyErrorCode = "XCH-010005"
	ErrCodeExchangeRateNotFound  CurrencyErrorCode = "XCH-010006"

	// Resolution errors (02XXXX)
	ErrCodeIncompatibleCurrencies CurrencyErrorCode = "XCH-020001"
	ErrCodeNoRateFound            CurrencyErrorCode = "XCH-020002"
	ErrCodeExchangeRateInUse      CurrencyErrorCode = "XCH-020003"
	ErrCodeCurrencyInUse          CurrencyErrorCode = "XCH-020004"
)

// CurrencyError represents a currency error with code and message.
type CurrencyError struct {
	Code    CurrencyErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CurrencyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CurrencyError) Unwrap() error {
	return e.Err
}

// NewCurrencyError creates a new CurrencyError with the given code and message.
func NewCurrencyError(code CurrencyErrorCode, message string, err error) *CurrencyError {
	return &CurrencyError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
