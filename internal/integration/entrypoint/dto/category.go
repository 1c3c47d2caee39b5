package dto

import (
	"time"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
// A nil parent creates a new root.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type" binding:"required,oneof=asset income expense loan balance"`
	ParentID    *string `json:"parent_id,omitempty" binding:"omitempty,uuid"`
}

// MoveCategoryRequest represents the request body for moving a category. A
// nil new parent promotes the subtree to a new root.
type MoveCategoryRequest struct {
	NewParentID *string `json:"new_parent_id,omitempty" binding:"omitempty,uuid"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	ParentID    *string   `json:"parent_id,omitempty"`
	Level       int       `json:"level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// CategoryDetailResponse represents a category with its structural context.
type CategoryDetailResponse struct {
	CategoryResponse
	IsTop       bool               `json:"is_top"`
	IsLeaf      bool               `json:"is_leaf"`
	Ancestors   []CategoryResponse `json:"ancestors"`
	Children    []CategoryResponse `json:"children"`
	Descendants []CategoryResponse `json:"descendants"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	response := CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
		Type:        string(category.Type),
		Level:       category.Level,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
	if category.ParentID != nil {
		parentID := category.ParentID.String()
		response.ParentID = &parentID
	}
	return response
}

// ToCategoryListResponse converts a list of categories to CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	out := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		out[i] = ToCategoryResponse(category)
	}
	return CategoryListResponse{Categories: out}
}
