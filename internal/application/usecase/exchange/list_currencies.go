package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
)

// ListCurrenciesInput represents the input for listing currencies.
type ListCurrenciesInput struct {
	OwnerID uuid.UUID
}

// ListCurrenciesOutput represents the output of listing currencies. It holds
// the user's own currencies plus the shared system ones.
type ListCurrenciesOutput struct {
	Currencies []*entity.Currency
}

// ListCurrenciesUseCase handles currency listing logic.
type ListCurrenciesUseCase struct {
	currencyRepo adapter.CurrencyRepository
}

// NewListCurrenciesUseCase creates a new ListCurrenciesUseCase instance.
func NewListCurrenciesUseCase(currencyRepo adapter.CurrencyRepository) *ListCurrenciesUseCase {
	return &ListCurrenciesUseCase{currencyRepo: currencyRepo}
}

// Execute retrieves the currencies visible to the user.
func (uc *ListCurrenciesUseCase) Execute(ctx context.Context, input ListCurrenciesInput) (*ListCurrenciesOutput, error) {
	currencies, err := uc.currencyRepo.FindVisibleToUser(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}

	return &ListCurrenciesOutput{Currencies: currencies}, nil
}

// ListExchangeRatesInput represents the input for listing exchange rates.
type ListExchangeRatesInput struct {
	OwnerID uuid.UUID
}

// ListExchangeRatesOutput represents the output of listing exchange rates.
type ListExchangeRatesOutput struct {
	ExchangeRates []*entity.ExchangeRate
}

// ListExchangeRatesUseCase handles exchange rate listing logic.
type ListExchangeRatesUseCase struct {
	rateRepo adapter.ExchangeRateRepository
}

// NewListExchangeRatesUseCase creates a new ListExchangeRatesUseCase instance.
func NewListExchangeRatesUseCase(rateRepo adapter.ExchangeRateRepository) *ListExchangeRatesUseCase {
	return &ListExchangeRatesUseCase{rateRepo: rateRepo}
}

// Execute retrieves all exchange rates owned by the user.
func (uc *ListExchangeRatesUseCase) Execute(ctx context.Context, input ListExchangeRatesInput) (*ListExchangeRatesOutput, error) {
	rates, err := uc.rateRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}

	return &ListExchangeRatesOutput{ExchangeRates: rates}, nil
}
