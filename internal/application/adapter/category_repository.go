// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence
// operations. Structural mutations hand the repository the complete set of
// touched nodes so the renumbered nested-set bounds are applied as a single
// atomic unit; a half-applied renumbering would corrupt the tree shape for
// concurrent readers.
type CategoryRepository interface {
	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindForestByOwner retrieves every category of the owner ordered by
	// their left bound, i.e. in depth-first tree order.
	FindForestByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Category, error)

	// CreateWithShift inserts the new node and persists the shifted bounds
	// of the given existing nodes in one transaction.
	CreateWithShift(ctx context.Context, node *entity.Category, shifted []*entity.Category) error

	// SaveBounds persists updated bounds, levels and parent references for
	// the given nodes in one transaction.
	SaveBounds(ctx context.Context, nodes []*entity.Category) error

	// DeleteWithShift soft-deletes the given nodes and persists the closed
	// gap on the remaining ones in one transaction.
	DeleteWithShift(ctx context.Context, deleted []*entity.Category, shifted []*entity.Category) error

	// CountTransferItems counts transfer items referencing any of the given
	// categories.
	CountTransferItems(ctx context.Context, ids []uuid.UUID) (int64, error)
}
