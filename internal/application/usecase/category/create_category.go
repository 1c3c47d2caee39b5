// Package category contains category tree use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 100

// Config carries the tree rules that are a deliberate policy choice rather
// than a hard invariant.
type Config struct {
	// EnforceTypeHomogeneity rejects inserting or moving a node under a
	// parent with a different category type.
	EnforceTypeHomogeneity bool
}

// CreateCategoryInput represents the input for category creation. A nil
// ParentID creates a new root.
type CreateCategoryInput struct {
	OwnerID     uuid.UUID
	ParentID    *uuid.UUID
	Name        string
	Description string
	Type        entity.CategoryType
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation. The new node is appended
// as a leaf; the nested-set bounds of everything right of the insertion
// point move in the same transaction.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	config       Config
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, config Config) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo, config: config}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if input.Name == "" || len(input.Name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryName,
			fmt.Sprintf("category name must be 1-%d characters", MaxCategoryNameLength),
			domainerror.ErrInvalidCategoryName,
		)
	}

	if !entity.IsValidCategoryType(input.Type) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be asset, income, expense, loan or balance",
			domainerror.ErrInvalidCategoryType,
		)
	}

	nodes, err := uc.categoryRepo.FindForestByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category forest: %w", err)
	}
	forest := NewForest(nodes)

	if input.ParentID != nil {
		parent, ok := forest.Node(*input.ParentID)
		if !ok {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeParentNotFound,
				"parent category not found",
				domainerror.ErrParentNotFound,
			)
		}
		if uc.config.EnforceTypeHomogeneity && parent.Type != input.Type {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryTypeMismatch,
				fmt.Sprintf("category type %q differs from parent type %q", input.Type, parent.Type),
				domainerror.ErrCategoryTypeMismatch,
			)
		}
	}

	node := entity.NewCategory(input.Name, input.Description, input.Type, input.OwnerID, input.ParentID)

	shifted, err := forest.Insert(node, input.ParentID)
	if err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeParentNotFound,
			"parent category not found",
			err,
		)
	}

	if err := uc.categoryRepo.CreateWithShift(ctx, node, shifted); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{Category: node}, nil
}
