package report

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
	transfers []*entity.Transfer
	calls     int
}

func (s *stubTransferRepo) Create(_ context.Context, transfer *entity.Transfer) error {
	s.transfers = append(s.transfers, transfer)
	return nil
}

func (s *stubTransferRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transfer, error) {
	for _, transfer := range s.transfers {
		if transfer.ID == id {
			return transfer, nil
		}
	}
	return nil, domainerror.ErrTransferNotFound
}

func (s *stubTransferRepo) FindByOwnerAndDateRange(_ context.Context, ownerID uuid.UUID, start, end time.Time) ([]*entity.Transfer, error) {
	s.calls++
	var matched []*entity.Transfer
	for _, transfer := range s.transfers {
		if transfer.OwnerID == ownerID && !transfer.Day.Before(start) && !transfer.Day.After(end) {
			matched = append(matched, transfer)
		}
	}
	return matched, nil
}

func (s *stubTransferRepo) Replace(_ context.Context, _ *entity.Transfer) error { return nil }

func (s *stubTransferRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

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

func (s *stubCategoryRepo) CreateWithShift(_ context.Context, _ *entity.Category, _ []*entity.Category) error {
	return nil
}

func (s *stubCategoryRepo) SaveBounds(_ context.Context, _ []*entity.Category) error { return nil }

func (s *stubCategoryRepo) DeleteWithShift(_ context.Context, _, _ []*entity.Category) error {
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

func (s *stubRateRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.ExchangeRate, error) {
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

type stubReportCache struct {
	entries map[string]*entity.Report
	sets    int
}

func newStubReportCache() *stubReportCache {
	return &stubReportCache{entries: make(map[string]*entity.Report)}
}

func (s *stubReportCache) Get(_ context.Context, key string) (*entity.Report, error) {
	return s.entries[key], nil
}

func (s *stubReportCache) Set(_ context.Context, key string, report *entity.Report, _ time.Duration) error {
	s.sets++
	s.entries[key] = report
	return nil
}

// reportFixture seeds an Expenses -> Food -> Groceries subtree plus a Salary
// root, USD and EUR currencies related 0.90 USD/EUR, and two March transfers.
type reportFixture struct {
	owner     uuid.UUID
	usdID     uuid.UUID
	eurID     uuid.UUID
	expenses  *entity.Category
	food      *entity.Category
	groceries *entity.Category
	salary    *entity.Category
	transfers *stubTransferRepo
	cache     *stubReportCache
	generate  *GenerateReportUseCase
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	owner := uuid.New()
	usdID, eurID := uuid.New(), uuid.New()

	expenses := entity.NewCategory("Expenses", "", entity.CategoryTypeExpense, owner, nil)
	expenses.Lft, expenses.Rgt, expenses.Level = 1, 6, 0
	food := entity.NewCategory("Food", "", entity.CategoryTypeExpense, owner, &expenses.ID)
	food.Lft, food.Rgt, food.Level = 2, 5, 1
	groceries := entity.NewCategory("Groceries", "", entity.CategoryTypeExpense, owner, &food.ID)
	groceries.Lft, groceries.Rgt, groceries.Level = 3, 4, 2
	salary := entity.NewCategory("Salary", "", entity.CategoryTypeIncome, owner, nil)
	salary.Lft, salary.Rgt, salary.Level = 7, 8, 0

	rate := entity.NewExchangeRate(usdID, eurID, decimal.RequireFromString("0.90"), nil, owner)

	transferRepo := &stubTransferRepo{}
	march5 := date(2024, time.March, 5)
	t1 := entity.NewTransfer("groceries run", march5, owner, usdID)
	t1.Items = []*entity.TransferItem{
		entity.NewTransferItem(t1.ID, groceries.ID, usdID, decimal.RequireFromString("-50.00"), ""),
		entity.NewTransferItem(t1.ID, salary.ID, usdID, decimal.RequireFromString("50.00"), ""),
	}
	march20 := date(2024, time.March, 20)
	t2 := entity.NewTransfer("restaurant abroad", march20, owner, usdID)
	t2.Items = []*entity.TransferItem{
		entity.NewTransferItem(t2.ID, food.ID, eurID, decimal.RequireFromString("-90.00"), ""),
		entity.NewTransferItem(t2.ID, salary.ID, usdID, decimal.RequireFromString("100.00"), ""),
	}
	transferRepo.transfers = []*entity.Transfer{t1, t2}

	cache := newStubReportCache()
	generate := NewGenerateReportUseCase(
		transferRepo,
		&stubCategoryRepo{nodes: []*entity.Category{expenses, food, groceries, salary}},
		exchange.NewResolver(&stubRateRepo{rates: []*entity.ExchangeRate{rate}}),
		cache,
		time.Minute,
	)

	return &reportFixture{
		owner:     owner,
		usdID:     usdID,
		eurID:     eurID,
		expenses:  expenses,
		food:      food,
		groceries: groceries,
		salary:    salary,
		transfers: transferRepo,
		cache:     cache,
		generate:  generate,
	}
}

func (f *reportFixture) baseSpec(kind entity.ReportKind) *entity.ReportSpec {
	spec := entity.NewReportSpec("test", kind, f.owner)
	spec.PeriodType = entity.PeriodThisMonth
	spec.TargetCurrencyID = f.usdID
	spec.Selections = []entity.CategorySelection{{CategoryID: f.expenses.ID, IncludeSubtree: true}}
	return spec
}

func TestGenerateReport(t *testing.T) {
	ctx := context.Background()
	now := date(2024, time.March, 15)

	t.Run("value report rolls the subtree up into the selected category", func(t *testing.T) {
		f := newReportFixture(t)

		out, err := f.generate.Execute(ctx, GenerateReportInput{OwnerID: f.owner, Spec: f.baseSpec(entity.ReportKindValue), Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Report.Values) != 1 {
			t.Fatalf("expected 1 value entry, got %d", len(out.Report.Values))
		}
		// -50.00 USD plus -90.00 EUR converted at 0.90 USD/EUR.
		if got := out.Report.Values[0].Value; !got.Equal(decimal.RequireFromString("-150.00")) {
			t.Errorf("expected -150.00, got %s", got)
		}
		if !out.Report.ResolvedStart.Equal(date(2024, time.March, 1)) || !out.Report.ResolvedEnd.Equal(date(2024, time.March, 31)) {
			t.Errorf("resolved period [%s, %s]", out.Report.ResolvedStart, out.Report.ResolvedEnd)
		}
	})

	t.Run("selection without subtree only counts the category itself", func(t *testing.T) {
		f := newReportFixture(t)
		spec := f.baseSpec(entity.ReportKindValue)
		spec.Selections = []entity.CategorySelection{{CategoryID: f.expenses.ID}}

		out, err := f.generate.Execute(ctx, GenerateReportInput{OwnerID: f.owner, Spec: spec, Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.Report.Values[0].Value; !got.IsZero() {
			t.Errorf("expected 0, got %s", got)
		}
	})

	t.Run("share report splits the absolute total", func(t *testing.T) {
		f := newReportFixture(t)
		spec := f.baseSpec(entity.ReportKindShare)
		spec.Selections = []entity.CategorySelection{
			{CategoryID: f.expenses.ID, IncludeSubtree: true},
			{CategoryID: f.salary.ID},
		}

		out, err := f.generate.Execute(ctx, GenerateReportInput{OwnerID: f.owner, Spec: spec, Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Report.Shares) != 2 {
			t.Fatalf("expected 2 shares, got %d", len(out.Report.Shares))
		}
		// Both sides aggregate to 150.00 in absolute value.
		for _, share := range out.Report.Shares {
			if !share.Percent.Equal(decimal.RequireFromString("50.00")) {
				t.Errorf("expected 50.00 percent, got %s", share.Percent)
			}
		}
	})

	t.Run("flow report buckets by month", func(t *testing.T) {
		f := newReportFixture(t)
		spec := f.baseSpec(entity.ReportKindFlow)
		spec.Division = entity.DivisionMonth

		out, err := f.generate.Execute(ctx, GenerateReportInput{OwnerID: f.owner, Spec: spec, Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Report.Flow) != 1 {
			t.Fatalf("expected 1 bucket, got %d", len(out.Report.Flow))
		}
		bucket := out.Report.Flow[0]
		if bucket.Label != "2024-03" {
			t.Errorf("expected label 2024-03, got %s", bucket.Label)
		}
		if !bucket.Value.Equal(decimal.RequireFromString("-150.00")) {
			t.Errorf("expected -150.00, got %s", bucket.Value)
		}
	})

	t.Run("flow report splits days across week buckets", func(t *testing.T) {
		f := newReportFixture(t)
		spec := f.baseSpec(entity.ReportKindFlow)
		spec.Division = entity.DivisionWeek

		out, err := f.generate.Execute(ctx, GenerateReportInput{OwnerID: f.owner, Spec: spec, Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var nonZero int
		for _, bucket := range out.Report.Flow {
			if !bucket.Value.IsZero() {
				nonZero++
			}
		}
		// March 5 and March 20 land in different weeks.
		if nonZero != 2 {
			t.Errorf("expected 2 non-zero buckets, got %d", nonZero)
		}
	})

	t.Run("show all currencies groups values without conversion", func(t *testing.T) {
		f := newReportFixture(t)
		spec := f.baseSpec(entity.ReportKindValue)
		spec.Algorithm = entity.AlgorithmShowAllCurrencies

		out, err := f.generate.Execute(ctx, GenerateReportInput{OwnerID: f.owner, Spec: spec, Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		byCurrency := out.Report.Values[0].ByCurrency
		if !byCurrency[f.usdID].Equal(decimal.RequireFromString("-50.00")) {
			t.Errorf("expected -50.00 USD, got %s", byCurrency[f.usdID])
		}
		if !byCurrency[f.eurID].Equal(decimal.RequireFromString("-90.00")) {
			t.Errorf("expected -90.00 EUR, got %s", byCurrency[f.eurID])
		}
	})

	t.Run("missing rate fails the whole report", func(t *testing.T) {
		f := newReportFixture(t)
		gbpID := uuid.New()
		t3 := entity.NewTransfer("gbp leg", date(2024, time.March, 8), f.owner, f.usdID)
		t3.Items = []*entity.TransferItem{
			entity.NewTransferItem(t3.ID, f.groceries.ID, gbpID, decimal.RequireFromString("-10.00"), ""),
		}
		f.transfers.transfers = append(f.transfers.transfers, t3)

		_, err := f.generate.Execute(ctx, GenerateReportInput{OwnerID: f.owner, Spec: f.baseSpec(entity.ReportKindValue), Now: now})
		if !errors.Is(err, domainerror.ErrNoRateFound) {
			t.Fatalf("expected ErrNoRateFound, got %v", err)
		}
	})

	t.Run("share report rejects show all currencies", func(t *testing.T) {
		f := newReportFixture(t)
		spec := f.baseSpec(entity.ReportKindShare)
		spec.Algorithm = entity.AlgorithmShowAllCurrencies

		_, err := f.generate.Execute(ctx, GenerateReportInput{OwnerID: f.owner, Spec: spec, Now: now})
		if !errors.Is(err, domainerror.ErrInvalidBalanceAlgorithm) {
			t.Fatalf("expected ErrInvalidBalanceAlgorithm, got %v", err)
		}
	})

	t.Run("unknown selected category fails the report", func(t *testing.T) {
		f := newReportFixture(t)
		spec := f.baseSpec(entity.ReportKindValue)
		spec.Selections = []entity.CategorySelection{{CategoryID: uuid.New()}}

		_, err := f.generate.Execute(ctx, GenerateReportInput{OwnerID: f.owner, Spec: spec, Now: now})
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Fatalf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("equal queries hit the cache", func(t *testing.T) {
		f := newReportFixture(t)
		spec := f.baseSpec(entity.ReportKindValue)

		if _, err := f.generate.Execute(ctx, GenerateReportInput{OwnerID: f.owner, Spec: spec, Now: now}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := f.generate.Execute(ctx, GenerateReportInput{OwnerID: f.owner, Spec: spec, Now: now}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.transfers.calls != 1 {
			t.Errorf("expected 1 ledger query, got %d", f.transfers.calls)
		}
		if f.cache.sets != 1 {
			t.Errorf("expected 1 cache write, got %d", f.cache.sets)
		}
	})
}
