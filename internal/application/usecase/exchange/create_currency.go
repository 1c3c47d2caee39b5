// Package exchange contains currency and exchange-rate use cases.
package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// CreateCurrencyInput represents the input for currency creation. A nil
// OwnerID registers a shared system currency.
type CreateCurrencyInput struct {
	Code    string
	Symbol  string
	Name    string
	OwnerID *uuid.UUID
}

// CreateCurrencyOutput represents the output of currency creation.
type CreateCurrencyOutput struct {
	Currency *entity.Currency
}

// CreateCurrencyUseCase handles currency creation logic.
type CreateCurrencyUseCase struct {
	currencyRepo adapter.CurrencyRepository
}

// NewCreateCurrencyUseCase creates a new CreateCurrencyUseCase instance.
func NewCreateCurrencyUseCase(currencyRepo adapter.CurrencyRepository) *CreateCurrencyUseCase {
	return &CreateCurrencyUseCase{currencyRepo: currencyRepo}
}

// Execute performs the currency creation.
func (uc *CreateCurrencyUseCase) Execute(ctx context.Context, input CreateCurrencyInput) (*CreateCurrencyOutput, error) {
	if !entity.IsValidCurrencyCode(input.Code) {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeInvalidCurrencyCode,
			"currency code must be exactly three uppercase letters",
			domainerror.ErrInvalidCurrencyCode,
		)
	}

	exists, err := uc.currencyRepo.ExistsByCodeAndOwner(ctx, input.Code, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check currency code uniqueness: %w", err)
	}
	if exists {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeDuplicateCurrencyCode,
			fmt.Sprintf("currency code %q already exists in this scope", input.Code),
			domainerror.ErrDuplicateCurrencyCode,
		)
	}

	currency := entity.NewCurrency(input.Code, input.Symbol, input.Name, input.OwnerID)

	if err := uc.currencyRepo.Create(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	return &CreateCurrencyOutput{Currency: currency}, nil
}
