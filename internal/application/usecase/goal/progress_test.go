package goal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/usecase/exchange"
	"github.com/finance-ledger/backend/internal/application/usecase/report"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

type stubGoalRepo struct {
	goals map[uuid.UUID]*entity.Goal
}

func newStubGoalRepo() *stubGoalRepo {
	return &stubGoalRepo{goals: make(map[uuid.UUID]*entity.Goal)}
}

func (s *stubGoalRepo) Create(_ context.Context, goal *entity.Goal) error {
	s.goals[goal.ID] = goal
	return nil
}

func (s *stubGoalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	goal, ok := s.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	return goal, nil
}

func (s *stubGoalRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Goal, error) {
	var matched []*entity.Goal
	for _, goal := range s.goals {
		if goal.OwnerID == ownerID {
			matched = append(matched, goal)
		}
	}
	return matched, nil
}

func (s *stubGoalRepo) Update(_ context.Context, goal *entity.Goal) error {
	s.goals[goal.ID] = goal
	return nil
}

func (s *stubGoalRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.goals, id)
	return nil
}

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

type stubTransferRepo struct {
	transfers []*entity.Transfer
}

func (s *stubTransferRepo) Create(_ context.Context, transfer *entity.Transfer) error {
	s.transfers = append(s.transfers, transfer)
	return nil
}

func (s *stubTransferRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Transfer, error) {
	return nil, domainerror.ErrTransferNotFound
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

func (s *stubTransferRepo) Replace(_ context.Context, _ *entity.Transfer) error { return nil }

func (s *stubTransferRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type stubRateRepo struct{}

func (s *stubRateRepo) Create(_ context.Context, _ *entity.ExchangeRate) error { return nil }

func (s *stubRateRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.ExchangeRate, error) {
	return nil, domainerror.ErrExchangeRateNotFound
}

func (s *stubRateRepo) FindByPair(_ context.Context, _, _, _ uuid.UUID) ([]*entity.ExchangeRate, error) {
	return nil, nil
}

func (s *stubRateRepo) FindByOwner(_ context.Context, _ uuid.UUID) ([]*entity.ExchangeRate, error) {
	return nil, nil
}

func (s *stubRateRepo) CountConversions(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubRateRepo) Update(_ context.Context, _ *entity.ExchangeRate) error { return nil }

func (s *stubRateRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// goalFixture seeds a Budget -> Savings / Household tree with single-currency
// March transfers: +300.00 into Savings and -700.00 out of Household.
type goalFixture struct {
	owner     uuid.UUID
	usdID     uuid.UUID
	budget    *entity.Category
	savings   *entity.Category
	household *entity.Category
	goals     *stubGoalRepo
	evaluator *ProgressEvaluator
	create    *CreateGoalUseCase
}

func newGoalFixture(t *testing.T) *goalFixture {
	t.Helper()

	owner := uuid.New()
	usdID := uuid.New()

	budget := entity.NewCategory("Budget", "", entity.CategoryTypeAsset, owner, nil)
	budget.Lft, budget.Rgt, budget.Level = 1, 6, 0
	savings := entity.NewCategory("Savings", "", entity.CategoryTypeAsset, owner, &budget.ID)
	savings.Lft, savings.Rgt, savings.Level = 2, 3, 1
	household := entity.NewCategory("Household", "", entity.CategoryTypeAsset, owner, &budget.ID)
	household.Lft, household.Rgt, household.Level = 4, 5, 1

	transferRepo := &stubTransferRepo{}
	t1 := entity.NewTransfer("savings deposit", date(2024, time.March, 10), owner, usdID)
	t1.Items = []*entity.TransferItem{
		entity.NewTransferItem(t1.ID, savings.ID, usdID, decimal.RequireFromString("300.00"), ""),
	}
	t2 := entity.NewTransfer("household spend", date(2024, time.March, 12), owner, usdID)
	t2.Items = []*entity.TransferItem{
		entity.NewTransferItem(t2.ID, household.ID, usdID, decimal.RequireFromString("-700.00"), ""),
	}
	transferRepo.transfers = []*entity.Transfer{t1, t2}

	categoryRepo := &stubCategoryRepo{nodes: []*entity.Category{budget, savings, household}}
	generate := report.NewGenerateReportUseCase(transferRepo, categoryRepo, exchange.NewResolver(&stubRateRepo{}), nil, 0)

	goals := newStubGoalRepo()
	return &goalFixture{
		owner:     owner,
		usdID:     usdID,
		budget:    budget,
		savings:   savings,
		household: household,
		goals:     goals,
		evaluator: NewProgressEvaluator(generate, categoryRepo, usdID),
		create:    NewCreateGoalUseCase(goals, categoryRepo),
	}
}

func (f *goalFixture) valueGoal(target string, condition entity.GoalCondition) *entity.Goal {
	return entity.NewGoal(
		"save up",
		f.savings.ID,
		false,
		entity.GoalTypeValue,
		condition,
		decimal.RequireFromString(target),
		&f.usdID,
		date(2024, time.March, 1),
		date(2024, time.March, 31),
		false,
		f.owner,
	)
}

func TestProgressEvaluator(t *testing.T) {
	ctx := context.Background()
	now := date(2024, time.March, 15)

	t.Run("value goal reports current value and percent complete", func(t *testing.T) {
		f := newGoalFixture(t)

		progress, err := f.evaluator.Evaluate(ctx, f.valueGoal("500.00", entity.GoalConditionAtLeast), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !progress.CurrentValue.Equal(decimal.RequireFromString("300.00")) {
			t.Errorf("expected current value 300.00, got %s", progress.CurrentValue)
		}
		if !progress.PercentComplete.Equal(decimal.RequireFromString("60.00")) {
			t.Errorf("expected 60.00 percent, got %s", progress.PercentComplete)
		}
		if progress.Achieved {
			t.Error("expected goal not achieved")
		}
	})

	t.Run("percent complete clamps at 100", func(t *testing.T) {
		f := newGoalFixture(t)

		progress, err := f.evaluator.Evaluate(ctx, f.valueGoal("200.00", entity.GoalConditionAtLeast), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !progress.PercentComplete.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected 100 percent, got %s", progress.PercentComplete)
		}
		if !progress.Achieved {
			t.Error("expected goal achieved")
		}
	})

	t.Run("zero target reads as zero percent", func(t *testing.T) {
		f := newGoalFixture(t)

		progress, err := f.evaluator.Evaluate(ctx, f.valueGoal("0.00", entity.GoalConditionAtLeast), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !progress.PercentComplete.IsZero() {
			t.Errorf("expected 0 percent, got %s", progress.PercentComplete)
		}
	})

	t.Run("at most condition holds while under the cap", func(t *testing.T) {
		f := newGoalFixture(t)

		progress, err := f.evaluator.Evaluate(ctx, f.valueGoal("400.00", entity.GoalConditionAtMost), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !progress.Achieved {
			t.Error("expected at-most goal achieved at 300.00 against 400.00")
		}
	})

	t.Run("percent goal measures the category against its parent", func(t *testing.T) {
		f := newGoalFixture(t)

		goal := entity.NewGoal(
			"savings share",
			f.savings.ID,
			false,
			entity.GoalTypePercent,
			entity.GoalConditionAtLeast,
			decimal.RequireFromString("25.00"),
			nil,
			date(2024, time.March, 1),
			date(2024, time.March, 31),
			false,
			f.owner,
		)

		progress, err := f.evaluator.Evaluate(ctx, goal, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Savings holds 300.00 of the Budget subtree's 400.00 absolute net.
		if !progress.CurrentValue.Equal(decimal.RequireFromString("75.00")) {
			t.Errorf("expected 75.00 percent of parent, got %s", progress.CurrentValue)
		}
		if !progress.Achieved {
			t.Error("expected percent goal achieved")
		}
	})

	t.Run("percent goal on a root category fails", func(t *testing.T) {
		f := newGoalFixture(t)

		goal := entity.NewGoal(
			"bad goal",
			f.budget.ID,
			true,
			entity.GoalTypePercent,
			entity.GoalConditionAtLeast,
			decimal.RequireFromString("10.00"),
			nil,
			date(2024, time.March, 1),
			date(2024, time.March, 31),
			false,
			f.owner,
		)

		_, err := f.evaluator.Evaluate(ctx, goal, now)
		if !errors.Is(err, domainerror.ErrPercentGoalNeedsParent) {
			t.Fatalf("expected ErrPercentGoalNeedsParent, got %v", err)
		}
	})

	t.Run("cyclic goal window rolls forward to cover now", func(t *testing.T) {
		f := newGoalFixture(t)

		goal := f.valueGoal("500.00", entity.GoalConditionAtLeast)
		goal.PeriodStart = date(2024, time.January, 1)
		goal.PeriodEnd = date(2024, time.January, 31)
		goal.Cyclic = true

		progress, err := f.evaluator.Evaluate(ctx, goal, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if progress.PeriodEnd.Before(now) {
			t.Errorf("expected rolled window to cover now, got end %s", progress.PeriodEnd)
		}
		// The stored goal keeps its original window.
		if !goal.PeriodStart.Equal(date(2024, time.January, 1)) {
			t.Error("expected stored goal window unchanged")
		}
		if progress.Finished {
			t.Error("expected rolled cyclic goal not finished")
		}
	})

	t.Run("elapsed non-cyclic goal reads as finished", func(t *testing.T) {
		f := newGoalFixture(t)

		goal := f.valueGoal("500.00", entity.GoalConditionAtLeast)
		goal.PeriodStart = date(2024, time.January, 1)
		goal.PeriodEnd = date(2024, time.January, 31)

		progress, err := f.evaluator.Evaluate(ctx, goal, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !progress.Finished {
			t.Error("expected elapsed goal to read as finished")
		}
	})
}

func TestGoalLifecycle(t *testing.T) {
	ctx := context.Background()
	now := date(2024, time.March, 15)

	t.Run("create validates the target category and currency", func(t *testing.T) {
		f := newGoalFixture(t)

		_, err := f.create.Execute(ctx, CreateGoalInput{
			OwnerID:     f.owner,
			CategoryID:  f.savings.ID,
			Type:        entity.GoalTypeValue,
			Condition:   entity.GoalConditionAtLeast,
			TargetValue: decimal.RequireFromString("500.00"),
			PeriodStart: date(2024, time.March, 1),
			PeriodEnd:   date(2024, time.March, 31),
		})
		if !errors.Is(err, domainerror.ErrGoalCurrencyRequired) {
			t.Fatalf("expected ErrGoalCurrencyRequired, got %v", err)
		}

		_, err = f.create.Execute(ctx, CreateGoalInput{
			OwnerID:     f.owner,
			CategoryID:  f.budget.ID,
			Type:        entity.GoalTypePercent,
			Condition:   entity.GoalConditionAtLeast,
			TargetValue: decimal.RequireFromString("10.00"),
			PeriodStart: date(2024, time.March, 1),
			PeriodEnd:   date(2024, time.March, 31),
		})
		if !errors.Is(err, domainerror.ErrPercentGoalNeedsParent) {
			t.Fatalf("expected ErrPercentGoalNeedsParent, got %v", err)
		}
	})

	t.Run("list evaluates progress for every goal", func(t *testing.T) {
		f := newGoalFixture(t)
		for _, target := range []string{"500.00", "300.00"} {
			goal := f.valueGoal(target, entity.GoalConditionAtLeast)
			if err := f.goals.Create(ctx, goal); err != nil {
				t.Fatalf("seed goal: %v", err)
			}
		}

		uc := NewListGoalsUseCase(f.goals, f.evaluator)
		out, err := uc.Execute(ctx, ListGoalsInput{OwnerID: f.owner, Now: now})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Goals) != 2 {
			t.Fatalf("expected 2 goals, got %d", len(out.Goals))
		}
		for _, entry := range out.Goals {
			if entry.Progress == nil {
				t.Fatal("expected progress for every goal")
			}
			if !entry.Progress.CurrentValue.Equal(decimal.RequireFromString("300.00")) {
				t.Errorf("expected current value 300.00, got %s", entry.Progress.CurrentValue)
			}
		}
	})

	t.Run("finish closes the goal and is terminal", func(t *testing.T) {
		f := newGoalFixture(t)
		goal := f.valueGoal("500.00", entity.GoalConditionAtLeast)
		goal.Cyclic = true
		if err := f.goals.Create(ctx, goal); err != nil {
			t.Fatalf("seed goal: %v", err)
		}

		uc := NewFinishGoalUseCase(f.goals)
		out, err := uc.Execute(ctx, FinishGoalInput{OwnerID: f.owner, GoalID: goal.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Goal.Finished || out.Goal.Cyclic {
			t.Error("expected goal finished with cyclic flag cleared")
		}

		if _, err := uc.Execute(ctx, FinishGoalInput{OwnerID: f.owner, GoalID: goal.ID}); !errors.Is(err, domainerror.ErrGoalAlreadyFinished) {
			t.Fatalf("expected ErrGoalAlreadyFinished, got %v", err)
		}
	})

	t.Run("another user's goal reads as not found", func(t *testing.T) {
		f := newGoalFixture(t)
		goal := f.valueGoal("500.00", entity.GoalConditionAtLeast)
		if err := f.goals.Create(ctx, goal); err != nil {
			t.Fatalf("seed goal: %v", err)
		}

		uc := NewDeleteGoalUseCase(f.goals)
		if err := uc.Execute(ctx, DeleteGoalInput{OwnerID: uuid.New(), GoalID: goal.ID}); !errors.Is(err, domainerror.ErrGoalNotFound) {
			t.Fatalf("expected ErrGoalNotFound, got %v", err)
		}
	})
}
