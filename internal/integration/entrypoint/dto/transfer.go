package dto

import (
	"time"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// TransferItemRequest represents one item of a transfer request body.
type TransferItemRequest struct {
	CategoryID  string `json:"category_id" binding:"required,uuid"`
	CurrencyID  string `json:"currency_id" binding:"required,uuid"`
	Value       string `json:"value" binding:"required"`
	Description string `json:"description,omitempty"`
}

// CreateTransferRequest represents the request body for transfer creation.
type CreateTransferRequest struct {
	Description         string                `json:"description,omitempty"`
	Day                 string                `json:"day" binding:"required"`
	ReferenceCurrencyID string                `json:"reference_currency_id" binding:"required,uuid"`
	Items               []TransferItemRequest `json:"items" binding:"required,min=2,dive"`
}

// UpdateTransferRequest represents the request body for transfer update. The
// update is a wholesale replacement of the transfer's items.
type UpdateTransferRequest struct {
	Description         string                `json:"description,omitempty"`
	Day                 string                `json:"day" binding:"required"`
	ReferenceCurrencyID string                `json:"reference_currency_id" binding:"required,uuid"`
	Items               []TransferItemRequest `json:"items" binding:"required,min=2,dive"`
}

// TransferItemResponse represents one item of a transfer in API responses.
type TransferItemResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"category_id"`
	CurrencyID  string `json:"currency_id"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// ConversionResponse records which exchange rate justified a cross-currency balance.
type ConversionResponse struct {
	ID             string `json:"id"`
	ExchangeRateID string `json:"exchange_rate_id"`
}

// TransferResponse represents a single transfer in API responses.
type TransferResponse struct {
	ID                  string                 `json:"id"`
	Description         string                 `json:"description,omitempty"`
	Day                 string                 `json:"day"`
	ReferenceCurrencyID string                 `json:"reference_currency_id"`
	Items               []TransferItemResponse `json:"items"`
	Conversions         []ConversionResponse   `json:"conversions"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// TransferDetailResponse represents a transfer with its derived views.
type TransferDetailResponse struct {
	TransferResponse
	CategoryIDs []string `json:"category_ids"`
	CurrencyIDs []string `json:"currency_ids"`
}

// TransferListResponse represents the response for listing transfers.
type TransferListResponse struct {
	Transfers []TransferResponse `json:"transfers"`
}

// ToTransferResponse converts a domain Transfer entity to a TransferResponse DTO.
func ToTransferResponse(transfer *entity.Transfer) TransferResponse {
	items := make([]TransferItemResponse, len(transfer.Items))
	for i, item := range transfer.Items {
		items[i] = TransferItemResponse{
			ID:          item.ID.String(),
			CategoryID:  item.CategoryID.String(),
			CurrencyID:  item.CurrencyID.String(),
			Value:       item.Value.StringFixed(2),
			Description: item.Description,
		}
	}
	conversions := make([]ConversionResponse, len(transfer.Conversions))
	for i, conversion := range transfer.Conversions {
		conversions[i] = ConversionResponse{
			ID:             conversion.ID.String(),
			ExchangeRateID: conversion.ExchangeRateID.String(),
		}
	}
	return TransferResponse{
		ID:                  transfer.ID.String(),
		Description:         transfer.Description,
		Day:                 transfer.Day.Format("2006-01-02"),
		ReferenceCurrencyID: transfer.ReferenceCurrencyID.String(),
		Items:               items,
		Conversions:         conversions,
		CreatedAt:           transfer.CreatedAt,
		UpdatedAt:           transfer.UpdatedAt,
	}
}

// ToTransferListResponse converts a list of transfers to TransferListResponse.
func ToTransferListResponse(transfers []*entity.Transfer) TransferListResponse {
	out := make([]TransferResponse, len(transfers))
	for i, transfer := range transfers {
		out[i] = ToTransferResponse(transfer)
	}
	return TransferListResponse{Transfers: out}
}
