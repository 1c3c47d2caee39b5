// Package transfer contains the ledger use cases: recording, replacing and
// querying balanced groups of monetary movements.
package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// DeleteTransferInput represents the input for transfer deletion.
type DeleteTransferInput struct {
	OwnerID    uuid.UUID
	TransferID uuid.UUID
}

// DeleteTransferUseCase removes a transfer together with its items and
// conversions.
type DeleteTransferUseCase struct {
	transferRepo adapter.TransferRepository
}

// NewDeleteTransferUseCase creates a new DeleteTransferUseCase instance.
func NewDeleteTransferUseCase(transferRepo adapter.TransferRepository) *DeleteTransferUseCase {
	return &DeleteTransferUseCase{transferRepo: transferRepo}
}

// Execute performs the transfer deletion.
func (uc *DeleteTransferUseCase) Execute(ctx context.Context, input DeleteTransferInput) error {
	existing, err := uc.transferRepo.FindByID(ctx, input.TransferID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransferNotFound) {
			return domainerror.NewTransferError(
				domainerror.ErrCodeTransferNotFound,
				"transfer not found",
				domainerror.ErrTransferNotFound,
			)
		}
		return fmt.Errorf("failed to load transfer: %w", err)
	}
	if existing.OwnerID != input.OwnerID {
		return domainerror.NewTransferError(
			domainerror.ErrCodeTransferNotFound,
			"transfer not found",
			domainerror.ErrTransferNotFound,
		)
	}

	if err := uc.transferRepo.Delete(ctx, input.TransferID); err != nil {
		return fmt.Errorf("failed to delete transfer: %w", err)
	}
	return nil
}
