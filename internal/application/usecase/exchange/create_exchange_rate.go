// Package exchange contains currency and exchange-rate use cases.
package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// CreateExchangeRateInput represents the input for exchange rate creation.
// Rate is units of currency B per one unit of currency A; a nil Day registers
// a dateless "current" rate.
type CreateExchangeRateInput struct {
	CurrencyAID uuid.UUID
	CurrencyBID uuid.UUID
	Rate        decimal.Decimal
	Day         *time.Time
	OwnerID     uuid.UUID
}

// CreateExchangeRateOutput represents the output of exchange rate creation.
type CreateExchangeRateOutput struct {
	ExchangeRate *entity.ExchangeRate
}

// CreateExchangeRateUseCase handles exchange rate creation logic.
type CreateExchangeRateUseCase struct {
	rateRepo     adapter.ExchangeRateRepository
	currencyRepo adapter.CurrencyRepository
}

// NewCreateExchangeRateUseCase creates a new CreateExchangeRateUseCase instance.
func NewCreateExchangeRateUseCase(
	rateRepo adapter.ExchangeRateRepository,
	currencyRepo adapter.CurrencyRepository,
) *CreateExchangeRateUseCase {
	return &CreateExchangeRateUseCase{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
	}
}

// Execute performs the exchange rate creation.
func (uc *CreateExchangeRateUseCase) Execute(ctx context.Context, input CreateExchangeRateInput) (*CreateExchangeRateOutput, error) {
	if input.CurrencyAID == input.CurrencyBID {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeSameCurrencyPair,
			"exchange rate requires two different currencies",
			domainerror.ErrSameCurrencyPair,
		)
	}

	if !input.Rate.IsPositive() {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeNonPositiveRate,
			"exchange rate must be greater than zero",
			domainerror.ErrNonPositiveRate,
		)
	}

	// Both currencies must exist before a rate can relate them.
	for _, currencyID := range []uuid.UUID{input.CurrencyAID, input.CurrencyBID} {
		if _, err := uc.currencyRepo.FindByID(ctx, currencyID); err != nil {
			return nil, domainerror.NewCurrencyError(
				domainerror.ErrCodeCurrencyNotFound,
				"currency not found",
				domainerror.ErrCurrencyNotFound,
			)
		}
	}

	rate := entity.NewExchangeRate(input.CurrencyAID, input.CurrencyBID, input.Rate, input.Day, input.OwnerID)

	if err := uc.rateRepo.Create(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create exchange rate: %w", err)
	}

	return &CreateExchangeRateOutput{ExchangeRate: rate}, nil
}
