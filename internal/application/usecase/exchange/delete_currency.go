package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// DeleteCurrencyInput represents the input for currency deletion.
type DeleteCurrencyInput struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

// DeleteCurrencyUseCase handles currency deletion logic.
type DeleteCurrencyUseCase struct {
	currencyRepo adapter.CurrencyRepository
}

// NewDeleteCurrencyUseCase creates a new DeleteCurrencyUseCase instance.
func NewDeleteCurrencyUseCase(currencyRepo adapter.CurrencyRepository) *DeleteCurrencyUseCase {
	return &DeleteCurrencyUseCase{currencyRepo: currencyRepo}
}

// Execute deletes a user-owned currency. Shared system currencies and
// currencies of other users read as not-found. A currency referenced by
// transfer items cannot be deleted.
func (uc *DeleteCurrencyUseCase) Execute(ctx context.Context, input DeleteCurrencyInput) error {
	currency, err := uc.currencyRepo.FindByID(ctx, input.ID)
	if err != nil {
		return err
	}
	if currency.OwnerID == nil || *currency.OwnerID != input.OwnerID {
		return domainerror.NewCurrencyError(
			domainerror.ErrCodeCurrencyNotFound,
			"currency not found",
			domainerror.ErrCurrencyNotFound,
		)
	}

	referenced, err := uc.currencyRepo.CountTransferItems(ctx, input.ID)
	if err != nil {
		return fmt.Errorf("failed to count transfer items for currency: %w", err)
	}
	if referenced > 0 {
		return domainerror.NewCurrencyError(
			domainerror.ErrCodeCurrencyInUse,
			fmt.Sprintf("currency is referenced by %d transfer items", referenced),
			domainerror.ErrCurrencyInUse,
		)
	}

	if err := uc.currencyRepo.Delete(ctx, input.ID); err != nil {
		return fmt.Errorf("failed to delete currency: %w", err)
	}

	return nil
}
