// Package transfer contains the ledger use cases: recording, replacing and
// querying balanced groups of monetary movements.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/application/usecase/exchange"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// UpdateTransferInput represents the input for transfer replacement. The
// submitted items fully replace the stored ones.
type UpdateTransferInput struct {
	OwnerID             uuid.UUID
	TransferID          uuid.UUID
	Description         string
	Day                 time.Time
	ReferenceCurrencyID uuid.UUID
	Items               []ItemInput
}

// UpdateTransferOutput represents the output of transfer replacement.
type UpdateTransferOutput struct {
	Transfer *entity.Transfer
}

// UpdateTransferUseCase replaces a transfer wholesale. The replacement runs
// through the same referential and balance checks as creation; a replacement
// that does not balance leaves the stored transfer untouched.
type UpdateTransferUseCase struct {
	transferRepo adapter.TransferRepository
	validator    validator
}

// NewUpdateTransferUseCase creates a new UpdateTransferUseCase instance.
func NewUpdateTransferUseCase(
	transferRepo adapter.TransferRepository,
	currencyRepo adapter.CurrencyRepository,
	categoryRepo adapter.CategoryRepository,
	resolver *exchange.Resolver,
) *UpdateTransferUseCase {
	return &UpdateTransferUseCase{
		transferRepo: transferRepo,
		validator: validator{
			currencyRepo: currencyRepo,
			categoryRepo: categoryRepo,
			resolver:     resolver,
		},
	}
}

// Execute performs the transfer replacement.
func (uc *UpdateTransferUseCase) Execute(ctx context.Context, input UpdateTransferInput) (*UpdateTransferOutput, error) {
	existing, err := uc.transferRepo.FindByID(ctx, input.TransferID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransferNotFound) {
			return nil, domainerror.NewTransferError(
				domainerror.ErrCodeTransferNotFound,
				"transfer not found",
				domainerror.ErrTransferNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load transfer: %w", err)
	}
	// Ownership failures read as not-found so transfer ids cannot be probed.
	if existing.OwnerID != input.OwnerID {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeTransferNotFound,
			"transfer not found",
			domainerror.ErrTransferNotFound,
		)
	}

	if err := uc.validator.preflight(ctx, input.OwnerID, input.ReferenceCurrencyID, input.Items); err != nil {
		return nil, err
	}

	replacement := &entity.Transfer{
		ID:                  existing.ID,
		Description:         input.Description,
		Day:                 input.Day,
		OwnerID:             existing.OwnerID,
		ReferenceCurrencyID: input.ReferenceCurrencyID,
		CreatedAt:           existing.CreatedAt,
		UpdatedAt:           time.Now().UTC(),
	}
	if err := uc.validator.balance(ctx, replacement, input.Items); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.Replace(ctx, replacement); err != nil {
		return nil, fmt.Errorf("failed to replace transfer: %w", err)
	}

	return &UpdateTransferOutput{Transfer: replacement}, nil
}
