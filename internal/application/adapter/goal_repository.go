// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the backing store.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByOwner retrieves all goals of a user.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Goal, error)

	// Update updates an existing goal.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete soft-deletes a goal.
	Delete(ctx context.Context, id uuid.UUID) error
}
