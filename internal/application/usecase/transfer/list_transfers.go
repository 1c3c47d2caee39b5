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
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// GetTransferInput represents the input for fetching one transfer.
type GetTransferInput struct {
	OwnerID    uuid.UUID
	TransferID uuid.UUID
}

// GetTransferOutput carries the transfer with its derived reference views.
type GetTransferOutput struct {
	Transfer    *entity.Transfer
	CategoryIDs []uuid.UUID
	CurrencyIDs []uuid.UUID
}

// GetTransferUseCase fetches a transfer with its items and conversions.
type GetTransferUseCase struct {
	transferRepo adapter.TransferRepository
}

// NewGetTransferUseCase creates a new GetTransferUseCase instance.
func NewGetTransferUseCase(transferRepo adapter.TransferRepository) *GetTransferUseCase {
	return &GetTransferUseCase{transferRepo: transferRepo}
}

// Execute fetches the transfer.
func (uc *GetTransferUseCase) Execute(ctx context.Context, input GetTransferInput) (*GetTransferOutput, error) {
	transfer, err := uc.transferRepo.FindByID(ctx, input.TransferID)
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
	if transfer.OwnerID != input.OwnerID {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeTransferNotFound,
			"transfer not found",
			domainerror.ErrTransferNotFound,
		)
	}

	return &GetTransferOutput{
		Transfer:    transfer,
		CategoryIDs: transfer.CategoryIDs(),
		CurrencyIDs: transfer.CurrencyIDs(),
	}, nil
}

// ListTransfersInput represents the input for listing transfers by period.
type ListTransfersInput struct {
	OwnerID uuid.UUID
	Start   time.Time
	End     time.Time
}

// ListTransfersOutput represents the output of the transfer listing.
type ListTransfersOutput struct {
	Transfers []*entity.Transfer
}

// ListTransfersUseCase lists an owner's transfers whose day falls inside the
// requested period, ordered by day.
type ListTransfersUseCase struct {
	transferRepo adapter.TransferRepository
}

// NewListTransfersUseCase creates a new ListTransfersUseCase instance.
func NewListTransfersUseCase(transferRepo adapter.TransferRepository) *ListTransfersUseCase {
	return &ListTransfersUseCase{transferRepo: transferRepo}
}

// Execute lists the transfers.
func (uc *ListTransfersUseCase) Execute(ctx context.Context, input ListTransfersInput) (*ListTransfersOutput, error) {
	transfers, err := uc.transferRepo.FindByOwnerAndDateRange(ctx, input.OwnerID, input.Start, input.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return &ListTransfersOutput{Transfers: transfers}, nil
}
