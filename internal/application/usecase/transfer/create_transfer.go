// Package transfer contains the ledger use cases: recording, replacing and
// querying balanced groups of monetary movements.
package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/application/usecase/exchange"
	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CreateTransferInput represents the input for transfer creation.
type CreateTransferInput struct {
	OwnerID             uuid.UUID
	Description         string
	Day                 time.Time
	ReferenceCurrencyID uuid.UUID
	Items               []ItemInput
}

// CreateTransferOutput represents the output of transfer creation.
type CreateTransferOutput struct {
	Transfer *entity.Transfer
}

// CreateTransferUseCase records a new transfer. Items are accepted only when
// their values, converted into the reference currency on the transfer's day,
// sum to exactly zero.
type CreateTransferUseCase struct {
	transferRepo adapter.TransferRepository
	validator    validator
}

// NewCreateTransferUseCase creates a new CreateTransferUseCase instance.
func NewCreateTransferUseCase(
	transferRepo adapter.TransferRepository,
	currencyRepo adapter.CurrencyRepository,
	categoryRepo adapter.CategoryRepository,
	resolver *exchange.Resolver,
) *CreateTransferUseCase {
	return &CreateTransferUseCase{
		transferRepo: transferRepo,
		validator: validator{
			currencyRepo: currencyRepo,
			categoryRepo: categoryRepo,
			resolver:     resolver,
		},
	}
}

// Execute performs the transfer creation.
func (uc *CreateTransferUseCase) Execute(ctx context.Context, input CreateTransferInput) (*CreateTransferOutput, error) {
	if err := uc.validator.preflight(ctx, input.OwnerID, input.ReferenceCurrencyID, input.Items); err != nil {
		return nil, err
	}

	transfer := entity.NewTransfer(input.Description, input.Day, input.OwnerID, input.ReferenceCurrencyID)
	if err := uc.validator.balance(ctx, transfer, input.Items); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	return &CreateTransferOutput{Transfer: transfer}, nil
}
