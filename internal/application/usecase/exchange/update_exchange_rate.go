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

// UpdateExchangeRateInput represents the input for exchange rate update.
type UpdateExchangeRateInput struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Rate    decimal.Decimal
	Day     *time.Time
}

// UpdateExchangeRateOutput represents the output of exchange rate update.
type UpdateExchangeRateOutput struct {
	ExchangeRate *entity.ExchangeRate
}

// UpdateExchangeRateUseCase handles exchange rate updates. A rate that is
// referenced by a recorded conversion is immutable: changing it would
// retroactively change the meaning of settled transfers.
type UpdateExchangeRateUseCase struct {
	rateRepo adapter.ExchangeRateRepository
}

// NewUpdateExchangeRateUseCase creates a new UpdateExchangeRateUseCase instance.
func NewUpdateExchangeRateUseCase(rateRepo adapter.ExchangeRateRepository) *UpdateExchangeRateUseCase {
	return &UpdateExchangeRateUseCase{rateRepo: rateRepo}
}

// Execute performs the exchange rate update.
func (uc *UpdateExchangeRateUseCase) Execute(ctx context.Context, input UpdateExchangeRateInput) (*UpdateExchangeRateOutput, error) {
	rate, err := uc.rateRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeExchangeRateNotFound,
			"exchange rate not found",
			domainerror.ErrExchangeRateNotFound,
		)
	}

	if rate.OwnerID != input.OwnerID {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeExchangeRateNotFound,
			"exchange rate not found",
			domainerror.ErrExchangeRateNotFound,
		)
	}

	if !input.Rate.IsPositive() {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeNonPositiveRate,
			"exchange rate must be greater than zero",
			domainerror.ErrNonPositiveRate,
		)
	}

	referenced, err := uc.rateRepo.CountConversions(ctx, rate.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate references: %w", err)
	}
	if referenced > 0 {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeExchangeRateInUse,
			"exchange rate is referenced by recorded conversions and cannot be changed",
			domainerror.ErrExchangeRateInUse,
		)
	}

	rate.Rate = input.Rate.Round(entity.RateScale)
	rate.Day = input.Day
	rate.UpdatedAt = time.Now().UTC()

	if err := uc.rateRepo.Update(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to update exchange rate: %w", err)
	}

	return &UpdateExchangeRateOutput{ExchangeRate: rate}, nil
}
