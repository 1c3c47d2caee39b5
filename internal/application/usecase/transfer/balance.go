// Package transfer contains the ledger use cases: recording, replacing and
// querying balanced groups of monetary movements.
package transfer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/application/usecase/exchange"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// ItemInput is one movement submitted for a transfer.
type ItemInput struct {
	CategoryID  uuid.UUID
	CurrencyID  uuid.UUID
	Value       decimal.Decimal
	Description string
}

// validator checks the referential and balance rules shared by transfer
// creation and replacement.
type validator struct {
	currencyRepo adapter.CurrencyRepository
	categoryRepo adapter.CategoryRepository
	resolver     *exchange.Resolver
}

// preflight verifies every referenced currency and category exists and is
// visible to the owner, including the reference currency itself.
func (v *validator) preflight(ctx context.Context, ownerID, referenceCurrencyID uuid.UUID, items []ItemInput) error {
	if len(items) < entity.MinTransferItems {
		return domainerror.NewTransferError(
			domainerror.ErrCodeInsufficientItems,
			fmt.Sprintf("a transfer needs at least %d items", entity.MinTransferItems),
			domainerror.ErrInsufficientItems,
		)
	}

	currencies, err := v.currencyRepo.FindVisibleToUser(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load currencies: %w", err)
	}
	visible := make(map[uuid.UUID]struct{}, len(currencies))
	for _, currency := range currencies {
		visible[currency.ID] = struct{}{}
	}
	if _, ok := visible[referenceCurrencyID]; !ok {
		return domainerror.NewTransferError(
			domainerror.ErrCodeUnknownCurrency,
			"reference currency not found",
			domainerror.ErrUnknownCurrency,
		)
	}

	nodes, err := v.categoryRepo.FindForestByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	known := make(map[uuid.UUID]struct{}, len(nodes))
	for _, node := range nodes {
		known[node.ID] = struct{}{}
	}

	for _, item := range items {
		if _, ok := visible[item.CurrencyID]; !ok {
			return domainerror.NewTransferError(
				domainerror.ErrCodeUnknownCurrency,
				"item references an unknown currency",
				domainerror.ErrUnknownCurrency,
			)
		}
		if _, ok := known[item.CategoryID]; !ok {
			return domainerror.NewTransferError(
				domainerror.ErrCodeUnknownCategory,
				"item references an unknown category",
				domainerror.ErrUnknownCategory,
			)
		}
	}
	return nil
}

// balance converts every item into the transfer's reference currency on the
// transfer's day and requires the rounded sum to be exactly zero. It attaches
// the items and one Conversion per distinct non-reference currency to the
// transfer.
func (v *validator) balance(ctx context.Context, transfer *entity.Transfer, items []ItemInput) error {
	sum := decimal.Zero
	rateByCurrency := make(map[uuid.UUID]uuid.UUID)

	transfer.Items = transfer.Items[:0]
	for _, input := range items {
		item := entity.NewTransferItem(transfer.ID, input.CategoryID, input.CurrencyID, input.Value, input.Description)
		transfer.Items = append(transfer.Items, item)

		if item.CurrencyID == transfer.ReferenceCurrencyID {
			sum = sum.Add(item.Value)
			continue
		}

		resolved, err := v.resolver.Rate(ctx, transfer.OwnerID, item.CurrencyID, transfer.ReferenceCurrencyID, &transfer.Day, exchange.SelectForDay)
		if err != nil {
			return err
		}
		rateByCurrency[item.CurrencyID] = resolved.ExchangeRateID
		sum = sum.Add(item.Value.Mul(resolved.Rate).Round(entity.MoneyScale))
	}

	if !sum.IsZero() {
		return domainerror.NewTransferError(
			domainerror.ErrCodeUnbalancedTransfer,
			fmt.Sprintf("items sum to %s in the reference currency, expected 0.00", sum.StringFixed(entity.MoneyScale)),
			domainerror.ErrUnbalancedTransfer,
		)
	}

	transfer.Conversions = transfer.Conversions[:0]
	for _, rateID := range rateByCurrency {
		transfer.Conversions = append(transfer.Conversions, entity.NewConversion(transfer.ID, rateID))
	}
	return nil
}
