// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CurrencyRepository defines the interface for currency persistence operations.
type CurrencyRepository interface {
	// Create creates a new currency in the backing store.
	Create(ctx context.Context, currency *entity.Currency) error

	// FindByID retrieves a currency by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Currency, error)

	// FindVisibleToUser retrieves the user's own currencies plus the shared
	// system currencies, ordered by code.
	FindVisibleToUser(ctx context.Context, userID uuid.UUID) ([]*entity.Currency, error)

	// FindSharedByCode retrieves the shared system currency with the code.
	FindSharedByCode(ctx context.Context, code string) (*entity.Currency, error)

	// ExistsByCodeAndOwner checks whether a code is already taken within the
	// owner scope. A nil ownerID checks the shared scope.
	ExistsByCodeAndOwner(ctx context.Context, code string, ownerID *uuid.UUID) (bool, error)

	// CountTransferItems counts transfer items referencing the currency.
	CountTransferItems(ctx context.Context, id uuid.UUID) (int64, error)

	// Delete soft-deletes a currency.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExchangeRateRepository defines the interface for exchange rate persistence
// operations.
type ExchangeRateRepository interface {
	// Create creates a new exchange rate in the backing store.
	Create(ctx context.Context, rate *entity.ExchangeRate) error

	// FindByID retrieves an exchange rate by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ExchangeRate, error)

	// FindByPair retrieves every rate registered between the two currencies
	// in either direction, visible to the given owner.
	FindByPair(ctx context.Context, ownerID, currencyA, currencyB uuid.UUID) ([]*entity.ExchangeRate, error)

	// FindByOwner retrieves all exchange rates owned by a user.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.ExchangeRate, error)

	// CountConversions counts recorded conversions referencing the rate.
	CountConversions(ctx context.Context, id uuid.UUID) (int64, error)

	// Update updates an existing exchange rate.
	Update(ctx context.Context, rate *entity.ExchangeRate) error

	// Delete soft-deletes an exchange rate.
	Delete(ctx context.Context, id uuid.UUID) error
}
