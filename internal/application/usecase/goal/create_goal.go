// Package goal contains the goal tracker use cases.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	OwnerID              uuid.UUID
	Description          string
	CategoryID           uuid.UUID
	IncludeSubcategories bool
	Type                 entity.GoalType
	Condition            entity.GoalCondition
	TargetValue          decimal.Decimal
	CurrencyID           *uuid.UUID
	PeriodStart          time.Time
	PeriodEnd            time.Time
	Cyclic               bool
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, categoryRepo adapter.CategoryRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{goalRepo: goalRepo, categoryRepo: categoryRepo}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if !entity.IsValidGoalType(input.Type) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalType,
			"goal type must be percent or value",
			domainerror.ErrInvalidGoalType,
		)
	}
	if !entity.IsValidGoalCondition(input.Condition) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalCondition,
			"goal condition must be at_least or at_most",
			domainerror.ErrInvalidGoalCondition,
		)
	}
	if !input.PeriodEnd.After(input.PeriodStart) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalPeriod,
			"goal period end must be after period start",
			domainerror.ErrInvalidGoalPeriod,
		)
	}
	if input.Type == entity.GoalTypeValue && input.CurrencyID == nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalCurrencyRequired,
			"value goal requires a currency",
			domainerror.ErrGoalCurrencyRequired,
		)
	}

	node, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"goal category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	if input.Type == entity.GoalTypePercent && node.ParentID == nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodePercentGoalNeedsParent,
			"percent goal requires a category with a parent",
			domainerror.ErrPercentGoalNeedsParent,
		)
	}

	goal := entity.NewGoal(
		input.Description,
		input.CategoryID,
		input.IncludeSubcategories,
		input.Type,
		input.Condition,
		input.TargetValue,
		input.CurrencyID,
		input.PeriodStart,
		input.PeriodEnd,
		input.Cyclic,
		input.OwnerID,
	)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &CreateGoalOutput{Goal: goal}, nil
}
