// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// ExchangeRateModel represents the exchange_rates table in the database.
type ExchangeRateModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CurrencyAID uuid.UUID       `gorm:"type:uuid;not null;index:idx_exchange_rates_pair"`
	CurrencyBID uuid.UUID       `gorm:"type:uuid;not null;index:idx_exchange_rates_pair"`
	Rate        decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	Day         *time.Time      `gorm:"type:date"` // nil = dateless "current" rate
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the ExchangeRateModel.
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// ToEntity converts an ExchangeRateModel to a domain ExchangeRate entity.
func (m *ExchangeRateModel) ToEntity() *entity.ExchangeRate {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.ExchangeRate{
		ID:          m.ID,
		CurrencyAID: m.CurrencyAID,
		CurrencyBID: m.CurrencyBID,
		Rate:        m.Rate,
		Day:         m.Day,
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// ExchangeRateFromEntity creates an ExchangeRateModel from a domain
// ExchangeRate entity.
func ExchangeRateFromEntity(rate *entity.ExchangeRate) *ExchangeRateModel {
	var deletedAt gorm.DeletedAt
	if rate.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *rate.DeletedAt, Valid: true}
	}

	return &ExchangeRateModel{
		ID:          rate.ID,
		CurrencyAID: rate.CurrencyAID,
		CurrencyBID: rate.CurrencyBID,
		Rate:        rate.Rate,
		Day:         rate.Day,
		OwnerID:     rate.OwnerID,
		CreatedAt:   rate.CreatedAt,
		UpdatedAt:   rate.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}
