// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the semantic type of a category. The type is fixed
// at creation because the ledger's sign conventions depend on it.
type CategoryType string

const (
	CategoryTypeAsset   CategoryType = "asset"
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeLoan    CategoryType = "loan"
	CategoryTypeBalance CategoryType = "balance"
)

// IsValidCategoryType reports whether t is one of the known category types.
func IsValidCategoryType(t CategoryType) bool {
	switch t {
	case CategoryTypeAsset, CategoryTypeIncome, CategoryTypeExpense, CategoryTypeLoan, CategoryTypeBalance:
		return true
	}
	return false
}

// DeletePolicy controls how deleting a category treats its children.
type DeletePolicy string

const (
	// DeletePolicyReject refuses to delete a category that has children.
	DeletePolicyReject DeletePolicy = "reject"
	// DeletePolicyCascade deletes the whole subtree.
	DeletePolicyCascade DeletePolicy = "cascade"
	// DeletePolicyReparent attaches the children to the deleted node's parent.
	DeletePolicyReparent DeletePolicy = "reparent"
)

// IsValidDeletePolicy reports whether p is one of the known delete policies.
func IsValidDeletePolicy(p DeletePolicy) bool {
	return p == DeletePolicyReject || p == DeletePolicyCascade || p == DeletePolicyReparent
}

// Category represents one node of a user's classification forest. The forest
// is encoded as a nested set: every node carries Lft/Rgt interval bounds and
// a child's interval nests strictly inside its parent's. Level is a cached
// depth (roots are level 0) recomputed together with the bounds on every
// structural mutation.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	Type        CategoryType
	OwnerID     uuid.UUID
	ParentID    *uuid.UUID
	Lft         int
	Rgt         int
	Level       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity. The nested-set bounds are
// assigned when the node is placed into the forest.
func NewCategory(name, description string, categoryType CategoryType, ownerID uuid.UUID, parentID *uuid.UUID) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Type:        categoryType,
		OwnerID:     ownerID,
		ParentID:    parentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsTop reports whether the category is a root of the forest.
func (c *Category) IsTop() bool {
	return c.ParentID == nil
}

// IsLeaf reports whether the category has no children. A nested-set leaf has
// an interval of width one.
func (c *Category) IsLeaf() bool {
	return c.Rgt-c.Lft == 1
}

// Contains reports whether other lies strictly inside this node's interval,
// i.e. other is a descendant of this node.
func (c *Category) Contains(other *Category) bool {
	return c.Lft < other.Lft && other.Rgt < c.Rgt
}
