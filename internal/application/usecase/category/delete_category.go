// Package category contains category tree use cases.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	OwnerID    uuid.UUID
	CategoryID uuid.UUID
	Policy     entity.DeletePolicy
}

// DeleteCategoryUseCase handles category deletion. The default policy
// rejects deleting a node with children; regardless of policy, a category
// still referenced by transfer items is never deleted.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	policy := input.Policy
	if policy == "" {
		policy = entity.DeletePolicyReject
	}
	if !entity.IsValidDeletePolicy(policy) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidDeletePolicy,
			"delete policy must be reject, cascade or reparent",
			domainerror.ErrInvalidDeletePolicy,
		)
	}

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

	// The usage check covers the whole doomed set: under cascade every
	// subtree member must be unreferenced, otherwise just the node.
	doomed := []uuid.UUID{node.ID}
	if policy == entity.DeletePolicyCascade {
		doomed = doomed[:0]
		for _, member := range forest.Subtree(node.ID) {
			doomed = append(doomed, member.ID)
		}
	}

	referenced, err := uc.categoryRepo.CountTransferItems(ctx, doomed)
	if err != nil {
		return fmt.Errorf("failed to check category references: %w", err)
	}
	if referenced > 0 {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryInUse,
			"category is referenced by transfer items",
			domainerror.ErrCategoryInUse,
		)
	}

	deleted, shifted, err := forest.Remove(input.CategoryID, policy)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotEmpty) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotEmpty,
				"category has children; move or delete them first",
				err,
			)
		}
		return err
	}

	if err := uc.categoryRepo.DeleteWithShift(ctx, deleted, shifted); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
