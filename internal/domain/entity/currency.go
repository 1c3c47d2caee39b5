// Package entity defines the core business entities for the domain layer.
package entity

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places for monetary amounts.
const MoneyScale = 2

// RateScale is the number of decimal places for stored exchange rates.
// Rates carry more precision than money so rounding only happens at the
// final conversion step.
const RateScale = 4

// currencyCodePattern matches a 3-letter uppercase ISO-style currency code.
var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency represents a currency known to the ledger. A nil OwnerID marks a
// shared system currency visible to every user.
type Currency struct {
	ID        uuid.UUID
	Code      string
	Symbol    string
	Name      string
	OwnerID   *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCurrency creates a new Currency entity.
func NewCurrency(code, symbol, name string, ownerID *uuid.UUID) *Currency {
	now := time.Now().UTC()

	return &Currency{
		ID:        uuid.New(),
		Code:      code,
		Symbol:    symbol,
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsShared reports whether the currency is a system-wide currency.
func (c *Currency) IsShared() bool {
	return c.OwnerID == nil
}

// IsValidCurrencyCode reports whether code is exactly three uppercase letters.
func IsValidCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}

// ExchangeRate represents a directed exchange rate between an ordered currency
// pair. Rate is the number of units of currency B per one unit of currency A.
// A nil Day marks a dateless "current" rate.
type ExchangeRate struct {
	ID          uuid.UUID
	CurrencyAID uuid.UUID
	CurrencyBID uuid.UUID
	Rate        decimal.Decimal
	Day         *time.Time
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewExchangeRate creates a new ExchangeRate entity.
func NewExchangeRate(currencyAID, currencyBID uuid.UUID, rate decimal.Decimal, day *time.Time, ownerID uuid.UUID) *ExchangeRate {
	now := time.Now().UTC()

	return &ExchangeRate{
		ID:          uuid.New(),
		CurrencyAID: currencyAID,
		CurrencyBID: currencyBID,
		Rate:        rate.Round(RateScale),
		Day:         day,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Covers reports whether the rate relates the two given currencies in either
// direction.
func (r *ExchangeRate) Covers(from, to uuid.UUID) bool {
	return (r.CurrencyAID == from && r.CurrencyBID == to) ||
		(r.CurrencyAID == to && r.CurrencyBID == from)
}

// RateFor returns the multiplier converting from the given source currency
// into the other currency of the pair, inverting the stored rate when the
// pair is registered in the opposite direction. The second return value is
// false when the rate does not cover the pair.
func (r *ExchangeRate) RateFor(from, to uuid.UUID) (decimal.Decimal, bool) {
	switch {
	case r.CurrencyAID == from && r.CurrencyBID == to:
		return r.Rate, true
	case r.CurrencyAID == to && r.CurrencyBID == from:
		// Inverse rates are computed on demand, never stored. Extra digits
		// keep the later 2-decimal rounding honest.
		return decimal.NewFromInt(1).DivRound(r.Rate, RateScale+4), true
	default:
		return decimal.Decimal{}, false
	}
}
