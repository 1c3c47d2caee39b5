package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/usecase/exchange"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

type stubTransferRepo struct {
	transfers map[uuid.UUID]*entity.Transfer
}

func newStubTransferRepo() *stubTransferRepo {
	return &stubTransferRepo{transfers: make(map[uuid.UUID]*entity.Transfer)}
}

func (s *stubTransferRepo) Create(_ context.Context, transfer *entity.Transfer) error {
	s.transfers[transfer.ID] = transfer
	return nil
}

func (s *stubTransferRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transfer, error) {
	transfer, ok := s.transfers[id]
	if !ok {
		return nil, domainerror.ErrTransferNotFound
	}
	return transfer, nil
}

func (s *stubTransferRepo) FindByOwnerAndDateRange(_ context.Context, ownerID uuid.UUID, start, end time.Time) ([]*entity.Transfer, error) {
	var matched []*entity.Transfer
	for _, transfer := range s.transfers {
		if transfer.OwnerID == ownerID && !transfer.Day.Before(start) && !transfer.Day.After(end) {
			matched = append(matched, transfer)
		}
	}
	return matched, nil
}

func (s *stubTransferRepo) Replace(_ context.Context, transfer *entity.Transfer) error {
	s.transfers[transfer.ID] = transfer
	return nil
}

func (s *stubTransferRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.transfers, id)
	return nil
}

type stubCurrencyRepo struct {
	currencies []*entity.Currency
}

func (s *stubCurrencyRepo) Create(_ context.Context, currency *entity.Currency) error {
	s.currencies = append(s.currencies, currency)
	return nil
}

func (s *stubCurrencyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Currency, error) {
	for _, currency := range s.currencies {
		if currency.ID == id {
			return currency, nil
		}
	}
	return nil, domainerror.ErrCurrencyNotFound
}

func (s *stubCurrencyRepo) FindSharedByCode(_ context.Context, code string) (*entity.Currency, error) {
	for _, currency := range s.currencies {
		if currency.Code == code && currency.OwnerID == nil {
			return currency, nil
		}
	}
	return nil, domainerror.ErrCurrencyNotFound
}

func (s *stubCurrencyRepo) FindVisibleToUser(_ context.Context, _ uuid.UUID) ([]*entity.Currency, error) {
	return s.currencies, nil
}

func (s *stubCurrencyRepo) ExistsByCodeAndOwner(_ context.Context, _ string, _ *uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubCurrencyRepo) CountTransferItems(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubCurrencyRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type stubCategoryRepo struct {
	nodes []*entity.Category
}

func (s *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, node := range s.nodes {
		if node.ID == id {
			return node, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (s *stubCategoryRepo) FindForestByOwner(_ context.Context, _ uuid.UUID) ([]*entity.Category, error) {
	return s.nodes, nil
}

func (s *stubCategoryRepo) CreateWithShift(_ context.Context, node *entity.Category, _ []*entity.Category) error {
	s.nodes = append(s.nodes, node)
	return nil
}

func (s *stubCategoryRepo) SaveBounds(_ context.Context, _ []*entity.Category) error { return nil }

func (s *stubCategoryRepo) DeleteWithShift(_ context.Context, _ []*entity.Category, _ []*entity.Category) error {
	return nil
}

func (s *stubCategoryRepo) CountTransferItems(_ context.Context, _ []uuid.UUID) (int64, error) {
	return 0, nil
}

type stubRateRepo struct {
	rates []*entity.ExchangeRate
}

func (s *stubRateRepo) Create(_ context.Context, rate *entity.ExchangeRate) error {
	s.rates = append(s.rates, rate)
	return nil
}

func (s *stubRateRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ExchangeRate, error) {
	for _, rate := range s.rates {
		if rate.ID == id {
			return rate, nil
		}
	}
	return nil, domainerror.ErrExchangeRateNotFound
}

func (s *stubRateRepo) FindByPair(_ context.Context, _ uuid.UUID, currencyA, currencyB uuid.UUID) ([]*entity.ExchangeRate, error) {
	var matched []*entity.ExchangeRate
	for _, rate := range s.rates {
		if rate.Covers(currencyA, currencyB) {
			matched = append(matched, rate)
		}
	}
	return matched, nil
}

func (s *stubRateRepo) FindByOwner(_ context.Context, _ uuid.UUID) ([]*entity.ExchangeRate, error) {
	return s.rates, nil
}

func (s *stubRateRepo) CountConversions(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubRateRepo) Update(_ context.Context, _ *entity.ExchangeRate) error { return nil }

func (s *stubRateRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

// ledgerFixture wires the create use case over in-memory stores seeded with
// USD, EUR, two expense-side categories and a 0.90 USD to EUR rate.
type ledgerFixture struct {
	owner    uuid.UUID
	usd      *entity.Currency
	eur      *entity.Currency
	salary   *entity.Category
	grocery  *entity.Category
	repo     *stubTransferRepo
	currency *stubCurrencyRepo
	create   *CreateTransferUseCase
	update   *UpdateTransferUseCase
}

func (f *ledgerFixture) addCurrency(currency *entity.Currency) {
	f.currency.currencies = append(f.currency.currencies, currency)
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	owner := uuid.New()
	usd := entity.NewCurrency("USD", "$", "US Dollar", nil)
	eur := entity.NewCurrency("EUR", "€", "Euro", nil)

	salary := entity.NewCategory("Salary", "", entity.CategoryTypeIncome, owner, nil)
	salary.Lft, salary.Rgt = 1, 2
	grocery := entity.NewCategory("Groceries", "", entity.CategoryTypeExpense, owner, nil)
	grocery.Lft, grocery.Rgt = 3, 4

	rate := entity.NewExchangeRate(usd.ID, eur.ID, decimal.RequireFromString("0.90"), nil, owner)

	currencyRepo := &stubCurrencyRepo{currencies: []*entity.Currency{usd, eur}}
	categoryRepo := &stubCategoryRepo{nodes: []*entity.Category{salary, grocery}}
	rateRepo := &stubRateRepo{rates: []*entity.ExchangeRate{rate}}
	transferRepo := newStubTransferRepo()
	resolver := exchange.NewResolver(rateRepo)

	return &ledgerFixture{
		owner:    owner,
		usd:      usd,
		eur:      eur,
		salary:   salary,
		grocery:  grocery,
		repo:     transferRepo,
		currency: currencyRepo,
		create:   NewCreateTransferUseCase(transferRepo, currencyRepo, categoryRepo, resolver),
		update:   NewUpdateTransferUseCase(transferRepo, currencyRepo, categoryRepo, resolver),
	}
}

func TestCreateTransfer_Balance(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("accepts a cross-currency transfer that balances through the rate", func(t *testing.T) {
		f := newLedgerFixture(t)

		// +100.00 USD against -90.00 EUR at 0.90 USD/EUR nets to zero.
		out, err := f.create.Execute(ctx, CreateTransferInput{
			OwnerID:             f.owner,
			Description:         "march salary split",
			Day:                 day,
			ReferenceCurrencyID: f.usd.ID,
			Items: []ItemInput{
				{CategoryID: f.salary.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("100.00")},
				{CategoryID: f.grocery.ID, CurrencyID: f.eur.ID, Value: decimal.RequireFromString("-90.00")},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transfer.Items) != 2 {
			t.Errorf("expected 2 items, got %d", len(out.Transfer.Items))
		}
		if len(out.Transfer.Conversions) != 1 {
			t.Errorf("expected 1 conversion for the EUR leg, got %d", len(out.Transfer.Conversions))
		}
		if _, ok := f.repo.transfers[out.Transfer.ID]; !ok {
			t.Error("expected transfer to be persisted")
		}
	})

	t.Run("rejects a cross-currency transfer that does not balance", func(t *testing.T) {
		f := newLedgerFixture(t)

		// -85.00 EUR converts to -94.44 USD, leaving a 5.56 residual.
		_, err := f.create.Execute(ctx, CreateTransferInput{
			OwnerID:             f.owner,
			Day:                 day,
			ReferenceCurrencyID: f.usd.ID,
			Items: []ItemInput{
				{CategoryID: f.salary.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("100.00")},
				{CategoryID: f.grocery.ID, CurrencyID: f.eur.ID, Value: decimal.RequireFromString("-85.00")},
			},
		})
		if !errors.Is(err, domainerror.ErrUnbalancedTransfer) {
			t.Fatalf("expected ErrUnbalancedTransfer, got %v", err)
		}
		if len(f.repo.transfers) != 0 {
			t.Error("expected nothing persisted")
		}
	})

	t.Run("single-currency transfer needs no conversion", func(t *testing.T) {
		f := newLedgerFixture(t)

		out, err := f.create.Execute(ctx, CreateTransferInput{
			OwnerID:             f.owner,
			Day:                 day,
			ReferenceCurrencyID: f.usd.ID,
			Items: []ItemInput{
				{CategoryID: f.salary.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("42.50")},
				{CategoryID: f.grocery.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("-42.50")},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transfer.Conversions) != 0 {
			t.Errorf("expected no conversions, got %d", len(out.Transfer.Conversions))
		}
	})

	t.Run("rejects fewer than two items", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.create.Execute(ctx, CreateTransferInput{
			OwnerID:             f.owner,
			Day:                 day,
			ReferenceCurrencyID: f.usd.ID,
			Items: []ItemInput{
				{CategoryID: f.salary.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("100.00")},
			},
		})
		if !errors.Is(err, domainerror.ErrInsufficientItems) {
			t.Fatalf("expected ErrInsufficientItems, got %v", err)
		}
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.create.Execute(ctx, CreateTransferInput{
			OwnerID:             f.owner,
			Day:                 day,
			ReferenceCurrencyID: f.usd.ID,
			Items: []ItemInput{
				{CategoryID: uuid.New(), CurrencyID: f.usd.ID, Value: decimal.RequireFromString("10.00")},
				{CategoryID: f.grocery.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("-10.00")},
			},
		})
		if !errors.Is(err, domainerror.ErrUnknownCategory) {
			t.Fatalf("expected ErrUnknownCategory, got %v", err)
		}
	})

	t.Run("rejects an unknown currency", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.create.Execute(ctx, CreateTransferInput{
			OwnerID:             f.owner,
			Day:                 day,
			ReferenceCurrencyID: f.usd.ID,
			Items: []ItemInput{
				{CategoryID: f.salary.ID, CurrencyID: uuid.New(), Value: decimal.RequireFromString("10.00")},
				{CategoryID: f.grocery.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("-10.00")},
			},
		})
		if !errors.Is(err, domainerror.ErrUnknownCurrency) {
			t.Fatalf("expected ErrUnknownCurrency, got %v", err)
		}
	})

	t.Run("fails when a currency pair has no registered rate", func(t *testing.T) {
		f := newLedgerFixture(t)
		gbp := entity.NewCurrency("GBP", "£", "Pound Sterling", nil)
		f.addCurrency(gbp)

		_, err := f.create.Execute(ctx, CreateTransferInput{
			OwnerID:             f.owner,
			Day:                 day,
			ReferenceCurrencyID: f.usd.ID,
			Items: []ItemInput{
				{CategoryID: f.salary.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("10.00")},
				{CategoryID: f.grocery.ID, CurrencyID: gbp.ID, Value: decimal.RequireFromString("-8.00")},
			},
		})
		if !errors.Is(err, domainerror.ErrIncompatibleCurrencies) {
			t.Fatalf("expected ErrIncompatibleCurrencies, got %v", err)
		}
	})
}

func TestUpdateTransfer(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	seed := func(t *testing.T, f *ledgerFixture) *entity.Transfer {
		t.Helper()
		out, err := f.create.Execute(ctx, CreateTransferInput{
			OwnerID:             f.owner,
			Description:         "original",
			Day:                 day,
			ReferenceCurrencyID: f.usd.ID,
			Items: []ItemInput{
				{CategoryID: f.salary.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("100.00")},
				{CategoryID: f.grocery.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("-100.00")},
			},
		})
		if err != nil {
			t.Fatalf("seed transfer: %v", err)
		}
		return out.Transfer
	}

	t.Run("replaces items wholesale and revalidates the balance", func(t *testing.T) {
		f := newLedgerFixture(t)
		existing := seed(t, f)

		out, err := f.update.Execute(ctx, UpdateTransferInput{
			OwnerID:             f.owner,
			TransferID:          existing.ID,
			Description:         "corrected",
			Day:                 day,
			ReferenceCurrencyID: f.usd.ID,
			Items: []ItemInput{
				{CategoryID: f.salary.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("100.00")},
				{CategoryID: f.grocery.ID, CurrencyID: f.eur.ID, Value: decimal.RequireFromString("-90.00")},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transfer.Description != "corrected" {
			t.Errorf("expected replaced description, got %q", out.Transfer.Description)
		}
		if len(out.Transfer.Conversions) != 1 {
			t.Errorf("expected 1 conversion, got %d", len(out.Transfer.Conversions))
		}

		stored := f.repo.transfers[existing.ID]
		if len(stored.Items) != 2 || !stored.Items[1].Value.Equal(decimal.RequireFromString("-90.00")) {
			t.Error("expected stored items to be replaced")
		}
	})

	t.Run("an unbalanced replacement leaves the stored transfer untouched", func(t *testing.T) {
		f := newLedgerFixture(t)
		existing := seed(t, f)

		_, err := f.update.Execute(ctx, UpdateTransferInput{
			OwnerID:             f.owner,
			TransferID:          existing.ID,
			Day:                 day,
			ReferenceCurrencyID: f.usd.ID,
			Items: []ItemInput{
				{CategoryID: f.salary.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("100.00")},
				{CategoryID: f.grocery.ID, CurrencyID: f.eur.ID, Value: decimal.RequireFromString("-85.00")},
			},
		})
		if !errors.Is(err, domainerror.ErrUnbalancedTransfer) {
			t.Fatalf("expected ErrUnbalancedTransfer, got %v", err)
		}
		if f.repo.transfers[existing.ID].Description != "original" {
			t.Error("expected stored transfer to be unchanged")
		}
	})

	t.Run("another user's transfer reads as not found", func(t *testing.T) {
		f := newLedgerFixture(t)
		existing := seed(t, f)

		_, err := f.update.Execute(ctx, UpdateTransferInput{
			OwnerID:             uuid.New(),
			TransferID:          existing.ID,
			Day:                 day,
			ReferenceCurrencyID: f.usd.ID,
			Items: []ItemInput{
				{CategoryID: f.salary.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("1.00")},
				{CategoryID: f.grocery.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("-1.00")},
			},
		})
		if !errors.Is(err, domainerror.ErrTransferNotFound) {
			t.Fatalf("expected ErrTransferNotFound, got %v", err)
		}
	})
}

func TestDeleteTransfer(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	out, err := f.create.Execute(ctx, CreateTransferInput{
		OwnerID:             f.owner,
		Day:                 time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		ReferenceCurrencyID: f.usd.ID,
		Items: []ItemInput{
			{CategoryID: f.salary.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("5.00")},
			{CategoryID: f.grocery.ID, CurrencyID: f.usd.ID, Value: decimal.RequireFromString("-5.00")},
		},
	})
	if err != nil {
		t.Fatalf("seed transfer: %v", err)
	}

	uc := NewDeleteTransferUseCase(f.repo)

	t.Run("another user's transfer reads as not found", func(t *testing.T) {
		err := uc.Execute(ctx, DeleteTransferInput{OwnerID: uuid.New(), TransferID: out.Transfer.ID})
		if !errors.Is(err, domainerror.ErrTransferNotFound) {
			t.Fatalf("expected ErrTransferNotFound, got %v", err)
		}
	})

	t.Run("owner deletes the transfer", func(t *testing.T) {
		if err := uc.Execute(ctx, DeleteTransferInput{OwnerID: f.owner, TransferID: out.Transfer.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.repo.transfers) != 0 {
			t.Error("expected transfer to be removed")
		}
	})
}
