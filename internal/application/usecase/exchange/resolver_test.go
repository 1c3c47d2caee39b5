package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// stubRateRepo is an in-memory ExchangeRateRepository for resolver tests.
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

func (s *stubRateRepo) FindByPair(_ context.Context, _, currencyA, currencyB uuid.UUID) ([]*entity.ExchangeRate, error) {
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
func (s *stubRateRepo) Delete(_ context.Context, _ uuid.UUID) error            { return nil }

func dayPtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestResolver_Convert(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	usd := uuid.New()
	eur := uuid.New()

	repo := &stubRateRepo{}
	repo.rates = append(repo.rates, entity.NewExchangeRate(usd, eur, decimal.RequireFromString("0.90"), nil, owner))
	resolver := NewResolver(repo)

	t.Run("direct conversion rounds to two decimals", func(t *testing.T) {
		got, err := resolver.Convert(ctx, owner, decimal.RequireFromString("100.00"), usd, eur, nil, SelectNewest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := decimal.RequireFromString("90.00"); !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("inverse conversion divides by the stored rate", func(t *testing.T) {
		got, err := resolver.Convert(ctx, owner, decimal.RequireFromString("-90.00"), eur, usd, nil, SelectNewest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := decimal.RequireFromString("-100.00"); !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("unbalanced scenario amount converts to -94.44", func(t *testing.T) {
		got, err := resolver.Convert(ctx, owner, decimal.RequireFromString("-85.00"), eur, usd, nil, SelectNewest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := decimal.RequireFromString("-94.44"); !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("identity conversion short-circuits", func(t *testing.T) {
		got, err := resolver.Convert(ctx, owner, decimal.RequireFromString("42.37"), usd, usd, nil, SelectNewest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := decimal.RequireFromString("42.37"); !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("missing pair fails with incompatible currencies", func(t *testing.T) {
		gbp := uuid.New()
		_, err := resolver.Convert(ctx, owner, decimal.RequireFromString("10.00"), usd, gbp, nil, SelectNewest)
		if !errors.Is(err, domainerror.ErrIncompatibleCurrencies) {
			t.Errorf("expected ErrIncompatibleCurrencies, got %v", err)
		}
	})

	t.Run("round trip stays within one cent", func(t *testing.T) {
		amounts := []string{"0.01", "1.00", "33.33", "100.00", "9999.99"}
		for _, raw := range amounts {
			amount := decimal.RequireFromString(raw)
			there, err := resolver.Convert(ctx, owner, amount, usd, eur, nil, SelectNewest)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			back, err := resolver.Convert(ctx, owner, there, eur, usd, nil, SelectNewest)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			diff := back.Sub(amount).Abs()
			if diff.GreaterThan(decimal.RequireFromString("0.01")) {
				t.Errorf("round trip of %s drifted by %s", amount, diff)
			}
		}
	})
}

func TestResolver_RateSelection(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	usd := uuid.New()
	eur := uuid.New()

	older := entity.NewExchangeRate(usd, eur, decimal.RequireFromString("0.80"), dayPtr(2024, time.January, 10), owner)
	newer := entity.NewExchangeRate(usd, eur, decimal.RequireFromString("0.85"), dayPtr(2024, time.March, 10), owner)
	repo := &stubRateRepo{rates: []*entity.ExchangeRate{older, newer}}
	resolver := NewResolver(repo)

	t.Run("newest picks the most recently dated rate", func(t *testing.T) {
		resolved, err := resolver.Rate(ctx, owner, usd, eur, nil, SelectNewest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolved.ExchangeRateID != newer.ID {
			t.Errorf("expected newest rate %s, got %s", newer.ID, resolved.ExchangeRateID)
		}
	})

	t.Run("newest prefers a dateless current rate", func(t *testing.T) {
		current := entity.NewExchangeRate(usd, eur, decimal.RequireFromString("0.90"), nil, owner)
		withCurrent := NewResolver(&stubRateRepo{rates: []*entity.ExchangeRate{older, newer, current}})

		resolved, err := withCurrent.Rate(ctx, owner, usd, eur, nil, SelectNewest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolved.ExchangeRateID != current.ID {
			t.Errorf("expected dateless rate %s, got %s", current.ID, resolved.ExchangeRateID)
		}
	})

	t.Run("closest picks the rate nearest the reference date", func(t *testing.T) {
		asOf := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
		resolved, err := resolver.Rate(ctx, owner, usd, eur, &asOf, SelectClosest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolved.ExchangeRateID != older.ID {
			t.Errorf("expected closest rate %s, got %s", older.ID, resolved.ExchangeRateID)
		}
	})

	t.Run("closest breaks distance ties toward the earlier rate", func(t *testing.T) {
		// Jan 10 and Mar 10 are 30 days either side of Feb 9.
		asOf := time.Date(2024, time.February, 9, 0, 0, 0, 0, time.UTC)
		resolved, err := resolver.Rate(ctx, owner, usd, eur, &asOf, SelectClosest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolved.ExchangeRateID != older.ID {
			t.Errorf("expected earlier rate %s, got %s", older.ID, resolved.ExchangeRateID)
		}
	})

	t.Run("exact-or-newest takes an exact date match first", func(t *testing.T) {
		asOf := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
		resolved, err := resolver.Rate(ctx, owner, usd, eur, &asOf, SelectExactOrNewest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolved.ExchangeRateID != older.ID {
			t.Errorf("expected exact match %s, got %s", older.ID, resolved.ExchangeRateID)
		}
	})

	t.Run("exact-or-newest falls back without an exact match", func(t *testing.T) {
		asOf := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
		resolved, err := resolver.Rate(ctx, owner, usd, eur, &asOf, SelectExactOrNewest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolved.ExchangeRateID != newer.ID {
			t.Errorf("expected newest fallback %s, got %s", newer.ID, resolved.ExchangeRateID)
		}
	})

	t.Run("for-day prefers dateless before closest", func(t *testing.T) {
		current := entity.NewExchangeRate(usd, eur, decimal.RequireFromString("0.90"), nil, owner)
		withCurrent := NewResolver(&stubRateRepo{rates: []*entity.ExchangeRate{older, newer, current}})

		asOf := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
		resolved, err := withCurrent.Rate(ctx, owner, usd, eur, &asOf, SelectForDay)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolved.ExchangeRateID != current.ID {
			t.Errorf("expected dateless rate %s, got %s", current.ID, resolved.ExchangeRateID)
		}
	})

	t.Run("for-day takes an exact match over dateless", func(t *testing.T) {
		current := entity.NewExchangeRate(usd, eur, decimal.RequireFromString("0.90"), nil, owner)
		withCurrent := NewResolver(&stubRateRepo{rates: []*entity.ExchangeRate{older, newer, current}})

		asOf := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
		resolved, err := withCurrent.Rate(ctx, owner, usd, eur, &asOf, SelectForDay)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolved.ExchangeRateID != newer.ID {
			t.Errorf("expected exact match %s, got %s", newer.ID, resolved.ExchangeRateID)
		}
	})
}

func TestCreateExchangeRate_Validation(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	usd := uuid.New()

	uc := NewCreateExchangeRateUseCase(&stubRateRepo{}, &stubCurrencyRepo{})

	t.Run("same currency pair is rejected", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateExchangeRateInput{
			CurrencyAID: usd,
			CurrencyBID: usd,
			Rate:        decimal.RequireFromString("1.10"),
			OwnerID:     owner,
		})
		if !errors.Is(err, domainerror.ErrSameCurrencyPair) {
			t.Errorf("expected ErrSameCurrencyPair, got %v", err)
		}
	})

	t.Run("non-positive rate is rejected", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateExchangeRateInput{
			CurrencyAID: usd,
			CurrencyBID: uuid.New(),
			Rate:        decimal.Zero,
			OwnerID:     owner,
		})
		if !errors.Is(err, domainerror.ErrNonPositiveRate) {
			t.Errorf("expected ErrNonPositiveRate, got %v", err)
		}
	})
}

// stubCurrencyRepo is an in-memory CurrencyRepository that treats every
// currency as existing.
type stubCurrencyRepo struct{}

func (s *stubCurrencyRepo) Create(_ context.Context, _ *entity.Currency) error { return nil }

func (s *stubCurrencyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Currency, error) {
	return &entity.Currency{ID: id, Code: "USD"}, nil
}

func (s *stubCurrencyRepo) FindSharedByCode(_ context.Context, code string) (*entity.Currency, error) {
	return &entity.Currency{ID: uuid.New(), Code: code}, nil
}

func (s *stubCurrencyRepo) FindVisibleToUser(_ context.Context, _ uuid.UUID) ([]*entity.Currency, error) {
	return nil, nil
}

func (s *stubCurrencyRepo) ExistsByCodeAndOwner(_ context.Context, _ string, _ *uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubCurrencyRepo) CountTransferItems(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubCurrencyRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
