// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// TransferRepository defines the interface for transfer persistence
// operations. A transfer is stored together with its items and conversions
// as one atomic unit; partial writes would expose an unbalanced ledger.
type TransferRepository interface {
	// Create creates a transfer with its items and conversions.
	Create(ctx context.Context, transfer *entity.Transfer) error

	// FindByID retrieves a transfer with its items and conversions.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transfer, error)

	// FindByOwnerAndDateRange retrieves all transfers of the owner whose day
	// falls in [start, end], with items, ordered by day.
	FindByOwnerAndDateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*entity.Transfer, error)

	// Replace atomically swaps a transfer's description, day, items and
	// conversions for the given replacement.
	Replace(ctx context.Context, transfer *entity.Transfer) error

	// Delete soft-deletes a transfer and cascades to its items and
	// conversions.
	Delete(ctx context.Context, id uuid.UUID) error
}
