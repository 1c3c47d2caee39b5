// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// TransferModel represents the transfers table in the database.
type TransferModel struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Description         string         `gorm:"type:varchar(255)"`
	Day                 time.Time      `gorm:"type:date;not null;index"`
	OwnerID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	ReferenceCurrencyID uuid.UUID      `gorm:"type:uuid;not null"`
	CreatedAt           time.Time      `gorm:"not null"`
	UpdatedAt           time.Time      `gorm:"not null"`
	DeletedAt           gorm.DeletedAt `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Items       []TransferItemModel `gorm:"foreignKey:TransferID;references:ID"`
	Conversions []ConversionModel   `gorm:"foreignKey:TransferID;references:ID"`
}

// TableName returns the table name for the TransferModel.
func (TransferModel) TableName() string {
	return "transfers"
}

// TransferItemModel represents the transfer_items table in the database.
// Items are exclusively owned by their transfer.
type TransferItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransferID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CurrencyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Value       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for the TransferItemModel.
func (TransferItemModel) TableName() string {
	return "transfer_items"
}

// ConversionModel represents the conversions table in the database.
type ConversionModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransferID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ExchangeRateID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for the ConversionModel.
func (ConversionModel) TableName() string {
	return "conversions"
}

// ToEntity converts a TransferModel with its items and conversions to a
// domain Transfer entity.
func (m *TransferModel) ToEntity() *entity.Transfer {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	items := make([]*entity.TransferItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = &entity.TransferItem{
			ID:          item.ID,
			TransferID:  item.TransferID,
			CategoryID:  item.CategoryID,
			CurrencyID:  item.CurrencyID,
			Value:       item.Value,
			Description: item.Description,
		}
	}

	conversions := make([]*entity.Conversion, len(m.Conversions))
	for i, conversion := range m.Conversions {
		conversions[i] = &entity.Conversion{
			ID:             conversion.ID,
			TransferID:     conversion.TransferID,
			ExchangeRateID: conversion.ExchangeRateID,
		}
	}

	return &entity.Transfer{
		ID:                  m.ID,
		Description:         m.Description,
		Day:                 m.Day,
		OwnerID:             m.OwnerID,
		ReferenceCurrencyID: m.ReferenceCurrencyID,
		Items:               items,
		Conversions:         conversions,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}

// TransferFromEntity creates a TransferModel from a domain Transfer entity.
func TransferFromEntity(transfer *entity.Transfer) *TransferModel {
	var deletedAt gorm.DeletedAt
	if transfer.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transfer.DeletedAt, Valid: true}
	}

	items := make([]TransferItemModel, len(transfer.Items))
	for i, item := range transfer.Items {
		items[i] = TransferItemModel{
			ID:          item.ID,
			TransferID:  item.TransferID,
			CategoryID:  item.CategoryID,
			CurrencyID:  item.CurrencyID,
			Value:       item.Value,
			Description: item.Description,
		}
	}

	conversions := make([]ConversionModel, len(transfer.Conversions))
	for i, conversion := range transfer.Conversions {
		conversions[i] = ConversionModel{
			ID:             conversion.ID,
			TransferID:     conversion.TransferID,
			ExchangeRateID: conversion.ExchangeRateID,
		}
	}

	return &TransferModel{
		ID:                  transfer.ID,
		Description:         transfer.Description,
		Day:                 transfer.Day,
		OwnerID:             transfer.OwnerID,
		ReferenceCurrencyID: transfer.ReferenceCurrencyID,
		Items:               items,
		Conversions:         conversions,
		CreatedAt:           transfer.CreatedAt,
		UpdatedAt:           transfer.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}
