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

// ListCategoriesInput represents the input for listing a user's categories.
type ListCategoriesInput struct {
	OwnerID uuid.UUID
}

// ListCategoriesOutput represents the output of listing categories: the
// forest in depth-first order.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase retrieves the owner's category forest.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute performs the listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	nodes, err := uc.categoryRepo.FindForestByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category forest: %w", err)
	}
	return &ListCategoriesOutput{Categories: NewForest(nodes).Nodes()}, nil
}

// GetCategoryInput represents the input for reading one category with its
// tree context.
type GetCategoryInput struct {
	OwnerID    uuid.UUID
	CategoryID uuid.UUID
}

// GetCategoryOutput represents one category with its derived tree queries.
type GetCategoryOutput struct {
	Category    *entity.Category
	Ancestors   []*entity.Category
	Children    []*entity.Category
	Descendants []*entity.Category
	Level       int
	IsTop       bool
	IsLeaf      bool
}

// GetCategoryUseCase reads one category together with its ancestors,
// children and descendants.
type GetCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(categoryRepo adapter.CategoryRepository) *GetCategoryUseCase {
	return &GetCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the read.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, input GetCategoryInput) (*GetCategoryOutput, error) {
	nodes, err := uc.categoryRepo.FindForestByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category forest: %w", err)
	}
	forest := NewForest(nodes)

	node, ok := forest.Node(input.CategoryID)
	if !ok {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	return &GetCategoryOutput{
		Category:    node,
		Ancestors:   forest.Ancestors(node.ID),
		Children:    forest.Children(node.ID),
		Descendants: forest.Descendants(node.ID),
		Level:       node.Level,
		IsTop:       node.IsTop(),
		IsLeaf:      node.IsLeaf(),
	}, nil
}
