// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinTransferItems is the smallest number of items a valid transfer may have.
// A single movement cannot balance, so the double-entry rule starts at two.
const MinTransferItems = 2

// Transfer represents a balanced group of monetary movements recorded on one
// date. Across all currencies present among its items, the net value
// converted into the reference currency sums to exactly zero.
type Transfer struct {
	ID                  uuid.UUID
	Description         string
	Day                 time.Time
	OwnerID             uuid.UUID
	ReferenceCurrencyID uuid.UUID
	Items               []*TransferItem
	Conversions         []*Conversion
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time // Soft-delete support
}

// NewTransfer creates a new Transfer entity without items; items and
// conversions are attached by the ledger once the balance is validated.
func NewTransfer(description string, day time.Time, ownerID, referenceCurrencyID uuid.UUID) *Transfer {
	now := time.Now().UTC()

	return &Transfer{
		ID:                  uuid.New(),
		Description:         description,
		Day:                 day,
		OwnerID:             ownerID,
		ReferenceCurrencyID: referenceCurrencyID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// CategoryIDs returns the distinct categories referenced by the transfer's
// items. Order is not significant.
func (t *Transfer) CategoryIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(t.Items))
	ids := make([]uuid.UUID, 0, len(t.Items))
	for _, item := range t.Items {
		if _, ok := seen[item.CategoryID]; ok {
			continue
		}
		seen[item.CategoryID] = struct{}{}
		ids = append(ids, item.CategoryID)
	}
	return ids
}

// CurrencyIDs returns the distinct currencies referenced by the transfer's
// items. Order is not significant.
func (t *Transfer) CurrencyIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(t.Items))
	ids := make([]uuid.UUID, 0, len(t.Items))
	for _, item := range t.Items {
		if _, ok := seen[item.CurrencyID]; ok {
			continue
		}
		seen[item.CurrencyID] = struct{}{}
		ids = append(ids, item.CurrencyID)
	}
	return ids
}

// TransferItem represents one signed monetary entry within a Transfer.
// Non-negative values are inflows, negative values outflows; by convention
// the sign agrees with the owning category's type (an expense item is
// negative). Items are exclusively owned by their transfer and cannot
// outlive it.
type TransferItem struct {
	ID          uuid.UUID
	TransferID  uuid.UUID
	CategoryID  uuid.UUID
	CurrencyID  uuid.UUID
	Value       decimal.Decimal
	Description string
}

// NewTransferItem creates a new TransferItem entity bound to its transfer.
func NewTransferItem(transferID, categoryID, currencyID uuid.UUID, value decimal.Decimal, description string) *TransferItem {
	return &TransferItem{
		ID:          uuid.New(),
		TransferID:  transferID,
		CategoryID:  categoryID,
		CurrencyID:  currencyID,
		Value:       value.Round(MoneyScale),
		Description: description,
	}
}

// Conversion records which exchange rate justified a cross-currency balance
// within a transfer. A transfer whose items share one currency has none.
type Conversion struct {
	ID             uuid.UUID
	TransferID     uuid.UUID
	ExchangeRateID uuid.UUID
}

// NewConversion creates a new Conversion entity bound to its transfer.
func NewConversion(transferID, exchangeRateID uuid.UUID) *Conversion {
	return &Conversion{
		ID:             uuid.New(),
		TransferID:     transferID,
		ExchangeRateID: exchangeRateID,
	}
}
