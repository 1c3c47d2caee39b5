package dto

import (
	"time"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CreateCurrencyRequest represents the request body for currency creation.
// Shared currencies have no owner and are visible to every user.
type CreateCurrencyRequest struct {
	Code   string `json:"code" binding:"required,len=3"`
	Symbol string `json:"symbol" binding:"required,min=1,max=8"`
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Shared bool   `json:"shared,omitempty"`
}

// CurrencyResponse represents a single currency in API responses.
type CurrencyResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id,omitempty"`
	Shared    bool      `json:"shared"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrencyListResponse represents the response for listing currencies.
type CurrencyListResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ToCurrencyResponse converts a domain Currency entity to a CurrencyResponse DTO.
func ToCurrencyResponse(currency *entity.Currency) CurrencyResponse {
	response := CurrencyResponse{
		ID:        currency.ID.String(),
		Code:      currency.Code,
		Symbol:    currency.Symbol,
		Name:      currency.Name,
		Shared:    currency.OwnerID == nil,
		CreatedAt: currency.CreatedAt,
		UpdatedAt: currency.UpdatedAt,
	}
	if currency.OwnerID != nil {
		response.OwnerID = currency.OwnerID.String()
	}
	return response
}

// ToCurrencyListResponse converts a list of currencies to CurrencyListResponse.
func ToCurrencyListResponse(currencies []*entity.Currency) CurrencyListResponse {
	out := make([]CurrencyResponse, len(currencies))
	for i, currency := range currencies {
		out[i] = ToCurrencyResponse(currency)
	}
	return CurrencyListResponse{Currencies: out}
}

// CreateExchangeRateRequest represents the request body for exchange rate
// creation. Day is optional; a dateless rate applies whenever no dated rate
// fits better.
type CreateExchangeRateRequest struct {
	CurrencyAID string  `json:"currency_a_id" binding:"required,uuid"`
	CurrencyBID string  `json:"currency_b_id" binding:"required,uuid"`
	Rate        string  `json:"rate" binding:"required"`
	Day         *string `json:"day,omitempty"`
}

// UpdateExchangeRateRequest represents the request body for exchange rate update.
type UpdateExchangeRateRequest struct {
	Rate string  `json:"rate" binding:"required"`
	Day  *string `json:"day,omitempty"`
}

// ExchangeRateResponse represents a single exchange rate in API responses.
type ExchangeRateResponse struct {
	ID          string    `json:"id"`
	CurrencyAID string    `json:"currency_a_id"`
	CurrencyBID string    `json:"currency_b_id"`
	Rate        string    `json:"rate"`
	Day         *string   `json:"day,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExchangeRateListResponse represents the response for listing exchange rates.
type ExchangeRateListResponse struct {
	ExchangeRates []ExchangeRateResponse `json:"exchange_rates"`
}

// ToExchangeRateResponse converts a domain ExchangeRate entity to an ExchangeRateResponse DTO.
func ToExchangeRateResponse(rate *entity.ExchangeRate) ExchangeRateResponse {
	response := ExchangeRateResponse{
		ID:          rate.ID.String(),
		CurrencyAID: rate.CurrencyAID.String(),
		CurrencyBID: rate.CurrencyBID.String(),
		Rate:        rate.Rate.String(),
		CreatedAt:   rate.CreatedAt,
		UpdatedAt:   rate.UpdatedAt,
	}
	if rate.Day != nil {
		day := rate.Day.Format("2006-01-02")
		response.Day = &day
	}
	return response
}

// ToExchangeRateListResponse converts a list of exchange rates to ExchangeRateListResponse.
func ToExchangeRateListResponse(rates []*entity.ExchangeRate) ExchangeRateListResponse {
	out := make([]ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		out[i] = ToExchangeRateResponse(rate)
	}
	return ExchangeRateListResponse{ExchangeRates: out}
}
