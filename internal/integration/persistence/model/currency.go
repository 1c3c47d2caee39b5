// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CurrencyModel represents the currencies table in the database.
type CurrencyModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Code      string         `gorm:"type:varchar(3);not null;index:idx_currencies_code_owner,unique"`
	Symbol    string         `gorm:"type:varchar(8)"`
	Name      string         `gorm:"type:varchar(100);not null"`
	OwnerID   *uuid.UUID     `gorm:"type:uuid;index:idx_currencies_code_owner,unique"` // nil = shared system currency
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the CurrencyModel.
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToEntity converts a CurrencyModel to a domain Currency entity.
func (m *CurrencyModel) ToEntity() *entity.Currency {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Currency{
		ID:        m.ID,
		Code:      m.Code,
		Symbol:    m.Symbol,
		Name:      m.Name,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// CurrencyFromEntity creates a CurrencyModel from a domain Currency entity.
func CurrencyFromEntity(currency *entity.Currency) *CurrencyModel {
	var deletedAt gorm.DeletedAt
	if currency.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *currency.DeletedAt, Valid: true}
	}

	return &CurrencyModel{
		ID:        currency.ID,
		Code:      currency.Code,
		Symbol:    currency.Symbol,
		Name:      currency.Name,
		OwnerID:   currency.OwnerID,
		CreatedAt: currency.CreatedAt,
		UpdatedAt: currency.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
