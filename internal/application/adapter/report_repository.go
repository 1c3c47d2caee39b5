// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// ReportRepository defines the interface for saved report spec persistence.
type ReportRepository interface {
	// Create creates a new saved report spec.
	Create(ctx context.Context, spec *entity.ReportSpec) error

	// FindByID retrieves a saved report spec by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ReportSpec, error)

	// FindByOwner retrieves all saved report specs of a user.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.ReportSpec, error)

	// Update updates an existing saved report spec.
	Update(ctx context.Context, spec *entity.ReportSpec) error

	// Delete soft-deletes a saved report spec.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReportCache caches generated report payloads keyed by the resolved spec.
// Entries expire by TTL since any ledger mutation can invalidate them.
type ReportCache interface {
	// Get returns the cached report for the key, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) (*entity.Report, error)

	// Set stores the report under the key for the given TTL.
	Set(ctx context.Context, key string, report *entity.Report, ttl time.Duration) error
}
