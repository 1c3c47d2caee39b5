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

// UpdateGoalInput represents the input for goal updates.
type UpdateGoalInput struct {
	OwnerID              uuid.UUID
	GoalID               uuid.UUID
	Description          string
	IncludeSubcategories bool
	Condition            entity.GoalCondition
	TargetValue          decimal.Decimal
	PeriodStart          time.Time
	PeriodEnd            time.Time
	Cyclic               bool
}

// UpdateGoalOutput represents the output of goal updates.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase updates a goal's target and window. The category, type
// and currency are fixed at creation; changing them would redefine what the
// goal measures.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := loadOwnedGoal(ctx, uc.goalRepo, input.OwnerID, input.GoalID)
	if err != nil {
		return nil, err
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

	goal.Description = input.Description
	goal.IncludeSubcategories = input.IncludeSubcategories
	goal.Condition = input.Condition
	goal.TargetValue = input.TargetValue
	goal.PeriodStart = input.PeriodStart
	goal.PeriodEnd = input.PeriodEnd
	goal.Cyclic = input.Cyclic
	goal.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return &UpdateGoalOutput{Goal: goal}, nil
}
