// Package exchange contains currency and exchange-rate use cases.
package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// DeleteExchangeRateInput represents the input for exchange rate deletion.
type DeleteExchangeRateInput struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

// DeleteExchangeRateUseCase handles exchange rate deletion. Only rates that
// no recorded conversion references may be deleted.
type DeleteExchangeRateUseCase struct {
	rateRepo adapter.ExchangeRateRepository
}

// NewDeleteExchangeRateUseCase creates a new DeleteExchangeRateUseCase instance.
func NewDeleteExchangeRateUseCase(rateRepo adapter.ExchangeRateRepository) *DeleteExchangeRateUseCase {
	return &DeleteExchangeRateUseCase{rateRepo: rateRepo}
}

// Execute performs the exchange rate deletion.
func (uc *DeleteExchangeRateUseCase) Execute(ctx context.Context, input DeleteExchangeRateInput) error {
	rate, err := uc.rateRepo.FindByID(ctx, input.ID)
	if err != nil {
		return domainerror.NewCurrencyError(
			domainerror.ErrCodeExchangeRateNotFound,
			"exchange rate not found",
			domainerror.ErrExchangeRateNotFound,
		)
	}

	if rate.OwnerID != input.OwnerID {
		return domainerror.NewCurrencyError(
			domainerror.ErrCodeExchangeRateNotFound,
			"exchange rate not found",
			domainerror.ErrExchangeRateNotFound,
		)
	}

	referenced, err := uc.rateRepo.CountConversions(ctx, rate.ID)
	if err != nil {
		return fmt.Errorf("failed to check rate references: %w", err)
	}
	if referenced > 0 {
		return domainerror.NewCurrencyError(
			domainerror.ErrCodeExchangeRateInUse,
			"exchange rate is referenced by recorded conversions and cannot be deleted",
			domainerror.ErrExchangeRateInUse,
		)
	}

	if err := uc.rateRepo.Delete(ctx, rate.ID); err != nil {
		return fmt.Errorf("failed to delete exchange rate: %w", err)
	}

	return nil
}
