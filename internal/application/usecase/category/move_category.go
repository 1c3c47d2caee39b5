// Package category contains category tree use cases.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// MoveCategoryInput represents the input for moving a category subtree. A
// nil NewParentID promotes the node to a root.
type MoveCategoryInput struct {
	OwnerID     uuid.UUID
	CategoryID  uuid.UUID
	NewParentID *uuid.UUID
}

// MoveCategoryUseCase handles moving a category subtree under a new parent.
type MoveCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	config       Config
}

// NewMoveCategoryUseCase creates a new MoveCategoryUseCase instance.
func NewMoveCategoryUseCase(categoryRepo adapter.CategoryRepository, config Config) *MoveCategoryUseCase {
	return &MoveCategoryUseCase{categoryRepo: categoryRepo, config: config}
}

// Execute performs the move.
func (uc *MoveCategoryUseCase) Execute(ctx context.Context, input MoveCategoryInput) error {
	nodes, err := uc.categoryRepo.FindForestByOwner(ctx, input.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to load category forest: %w", err)
	}
	forest := NewForest(nodes)

	node, ok := forest.Node(input.CategoryID)
	if !ok {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if input.NewParentID != nil && uc.config.EnforceTypeHomogeneity {
		parent, ok := forest.Node(*input.NewParentID)
		if ok && parent.Type != node.Type {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryTypeMismatch,
				fmt.Sprintf("category type %q differs from new parent type %q", node.Type, parent.Type),
				domainerror.ErrCategoryTypeMismatch,
			)
		}
	}

	changed, err := forest.Move(input.CategoryID, input.NewParentID)
	if err != nil {
		switch {
		case errors.Is(err, domainerror.ErrCycleDetected):
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCycleDetected,
				"cannot move a category under itself or one of its descendants",
				err,
			)
		case errors.Is(err, domainerror.ErrParentNotFound):
			return domainerror.NewCategoryError(
				domainerror.ErrCodeParentNotFound,
				"new parent category not found",
				err,
			)
		default:
			return err
		}
	}

	if len(changed) == 0 {
		return nil
	}

	if err := uc.categoryRepo.SaveBounds(ctx, changed); err != nil {
		return fmt.Errorf("failed to persist moved category bounds: %w", err)
	}

	return nil
}
