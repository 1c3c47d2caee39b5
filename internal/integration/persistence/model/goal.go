// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Description          string          `gorm:"type:varchar(255)"`
	CategoryID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	IncludeSubcategories bool            `gorm:"default:false"`
	Type                 string          `gorm:"type:varchar(10);not null"`
	Condition            string          `gorm:"type:varchar(10);not null"`
	TargetValue          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrencyID           *uuid.UUID      `gorm:"type:uuid"` // nil for percent goals
	PeriodStart          time.Time       `gorm:"type:date;not null"`
	PeriodEnd            time.Time       `gorm:"type:date;not null"`
	Cyclic               bool            `gorm:"default:false"`
	Finished             bool            `gorm:"default:false"`
	OwnerID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
	DeletedAt            gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Goal{
		ID:                   m.ID,
		Description:          m.Description,
		CategoryID:           m.CategoryID,
		IncludeSubcategories: m.IncludeSubcategories,
		Type:                 entity.GoalType(m.Type),
		Condition:            entity.GoalCondition(m.Condition),
		TargetValue:          m.TargetValue,
		CurrencyID:           m.CurrencyID,
		PeriodStart:          m.PeriodStart,
		PeriodEnd:            m.PeriodEnd,
		Cyclic:               m.Cyclic,
		Finished:             m.Finished,
		OwnerID:              m.OwnerID,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	var deletedAt gorm.DeletedAt
	if goal.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *goal.DeletedAt, Valid: true}
	}

	return &GoalModel{
		ID:                   goal.ID,
		Description:          goal.Description,
		CategoryID:           goal.CategoryID,
		IncludeSubcategories: goal.IncludeSubcategories,
		Type:                 string(goal.Type),
		Condition:            string(goal.Condition),
		TargetValue:          goal.TargetValue,
		CurrencyID:           goal.CurrencyID,
		PeriodStart:          goal.PeriodStart,
		PeriodEnd:            goal.PeriodEnd,
		Cyclic:               goal.Cyclic,
		Finished:             goal.Finished,
		OwnerID:              goal.OwnerID,
		CreatedAt:            goal.CreatedAt,
		UpdatedAt:            goal.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}
