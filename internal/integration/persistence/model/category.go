// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database. The nested
// set bounds (lft/rgt) and the cached level are maintained by the category
// use cases and written back in one transaction per structural change.
type CategoryModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"type:varchar(100);not null"`
	Description string         `gorm:"type:text"`
	Type        string         `gorm:"type:varchar(10);not null"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	ParentID    *uuid.UUID     `gorm:"type:uuid;index"`
	Lft         int            `gorm:"not null;index"`
	Rgt         int            `gorm:"not null"`
	Level       int            `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Type:        entity.CategoryType(m.Type),
		OwnerID:     m.OwnerID,
		ParentID:    m.ParentID,
		Lft:         m.Lft,
		Rgt:         m.Rgt,
		Level:       m.Level,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	var deletedAt gorm.DeletedAt
	if category.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *category.DeletedAt, Valid: true}
	}

	return &CategoryModel{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Type:        string(category.Type),
		OwnerID:     category.OwnerID,
		ParentID:    category.ParentID,
		Lft:         category.Lft,
		Rgt:         category.Rgt,
		Level:       category.Level,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}
