// Package goal contains the goal tracker use cases.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/application/usecase/report"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

var hundred = decimal.NewFromInt(100)

// Progress is the derived state of a goal: the aggregated current value, how
// far along the target it is and whether the completion condition holds.
type Progress struct {
	CurrentValue    decimal.Decimal
	PercentComplete decimal.Decimal
	Achieved        bool
	Finished        bool
	PeriodStart     time.Time
	PeriodEnd       time.Time
}

// ProgressEvaluator derives a goal's progress through the report engine.
// Nothing here is stored; every read recomputes against the ledger.
type ProgressEvaluator struct {
	generate     *report.GenerateReportUseCase
	categoryRepo adapter.CategoryRepository
	// fallbackCurrencyID converts percent-goal aggregates, which carry no
	// currency of their own.
	fallbackCurrencyID uuid.UUID
}

// NewProgressEvaluator creates a new ProgressEvaluator instance.
func NewProgressEvaluator(generate *report.GenerateReportUseCase, categoryRepo adapter.CategoryRepository, fallbackCurrencyID uuid.UUID) *ProgressEvaluator {
	return &ProgressEvaluator{generate: generate, categoryRepo: categoryRepo, fallbackCurrencyID: fallbackCurrencyID}
}

// Evaluate computes the goal's progress at now. Cyclic goals are evaluated
// against their window rolled forward to cover now.
func (e *ProgressEvaluator) Evaluate(ctx context.Context, goal *entity.Goal, now time.Time) (*Progress, error) {
	window := *goal
	window.RollForward(now)

	current, err := e.currentValue(ctx, &window, now)
	if err != nil {
		return nil, err
	}

	return &Progress{
		CurrentValue:    current,
		PercentComplete: percentComplete(goal.TargetValue, current),
		Achieved:        goal.IsAchieved(current),
		Finished:        window.IsFinished(now),
		PeriodStart:     window.PeriodStart,
		PeriodEnd:       window.PeriodEnd,
	}, nil
}

// currentValue aggregates the goal's category over its window. For percent
// goals the result is the category's share of its parent's total, in percent.
func (e *ProgressEvaluator) currentValue(ctx context.Context, goal *entity.Goal, now time.Time) (decimal.Decimal, error) {
	if goal.Type == entity.GoalTypePercent {
		return e.percentOfParent(ctx, goal, now)
	}

	total, err := e.categoryTotal(ctx, goal, goal.CategoryID, goal.IncludeSubcategories, now)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return total, nil
}

func (e *ProgressEvaluator) percentOfParent(ctx context.Context, goal *entity.Goal, now time.Time) (decimal.Decimal, error) {
	child, err := e.categoryTotal(ctx, goal, goal.CategoryID, goal.IncludeSubcategories, now)
	if err != nil {
		return decimal.Decimal{}, err
	}
	parentID, err := e.parentOf(ctx, goal)
	if err != nil {
		return decimal.Decimal{}, err
	}
	parent, err := e.categoryTotal(ctx, goal, parentID, true, now)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if parent.IsZero() {
		return decimal.Zero, nil
	}
	return child.Abs().Div(parent.Abs()).Mul(hundred).Round(entity.MoneyScale), nil
}

func (e *ProgressEvaluator) categoryTotal(ctx context.Context, goal *entity.Goal, categoryID uuid.UUID, includeSubtree bool, now time.Time) (decimal.Decimal, error) {
	spec := entity.NewReportSpec("", entity.ReportKindValue, goal.OwnerID)
	spec.PeriodType = entity.PeriodSelected
	spec.PeriodStart = &goal.PeriodStart
	spec.PeriodEnd = &goal.PeriodEnd
	spec.Selections = []entity.CategorySelection{{CategoryID: categoryID, IncludeSubtree: includeSubtree}}
	spec.TargetCurrencyID = e.currencyFor(goal)

	out, err := e.generate.Execute(ctx, report.GenerateReportInput{OwnerID: goal.OwnerID, Spec: spec, Now: now})
	if err != nil {
		return decimal.Decimal{}, err
	}
	if len(out.Report.Values) == 0 {
		return decimal.Zero, nil
	}
	return out.Report.Values[0].Value, nil
}

func (e *ProgressEvaluator) currencyFor(goal *entity.Goal) uuid.UUID {
	if goal.CurrencyID != nil {
		return *goal.CurrencyID
	}
	return e.fallbackCurrencyID
}

// parentOf resolves the parent category a percent goal measures against.
func (e *ProgressEvaluator) parentOf(ctx context.Context, goal *entity.Goal) (uuid.UUID, error) {
	node, err := e.categoryRepo.FindByID(ctx, goal.CategoryID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load goal category: %w", err)
	}
	if node.ParentID == nil {
		return uuid.Nil, domainerror.NewGoalError(
			domainerror.ErrCodePercentGoalNeedsParent,
			"percent goal requires a category with a parent",
			domainerror.ErrPercentGoalNeedsParent,
		)
	}
	return *node.ParentID, nil
}

// percentComplete clamps progress toward the target to [0, 100]. A zero
// target reads as no progress.
func percentComplete(target, current decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	percent := current.Div(target).Mul(hundred).Round(entity.MoneyScale)
	if percent.IsNegative() {
		return decimal.Zero
	}
	if percent.GreaterThan(hundred) {
		return hundred
	}
	return percent
}
