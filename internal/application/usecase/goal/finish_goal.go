// Package goal contains the goal tracker use cases.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// FinishGoalInput represents the input for finishing a goal.
type FinishGoalInput struct {
	OwnerID uuid.UUID
	GoalID  uuid.UUID
}

// FinishGoalOutput represents the output of finishing a goal.
type FinishGoalOutput struct {
	Goal *entity.Goal
}

// FinishGoalUseCase closes a goal: it is marked finished, loses its cyclic
// flag and its period window ends now. Finished is terminal.
type FinishGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewFinishGoalUseCase creates a new FinishGoalUseCase instance.
func NewFinishGoalUseCase(goalRepo adapter.GoalRepository) *FinishGoalUseCase {
	return &FinishGoalUseCase{goalRepo: goalRepo}
}

// Execute finishes the goal.
func (uc *FinishGoalUseCase) Execute(ctx context.Context, input FinishGoalInput) (*FinishGoalOutput, error) {
	goal, err := loadOwnedGoal(ctx, uc.goalRepo, input.OwnerID, input.GoalID)
	if err != nil {
		return nil, err
	}
	if goal.Finished {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalAlreadyFinished,
			"goal is already finished",
			domainerror.ErrGoalAlreadyFinished,
		)
	}

	goal.Finish(time.Now().UTC())

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to finish goal: %w", err)
	}
	return &FinishGoalOutput{Goal: goal}, nil
}

// DeleteGoalInput represents the input for goal deletion.
type DeleteGoalInput struct {
	OwnerID uuid.UUID
	GoalID  uuid.UUID
}

// DeleteGoalUseCase deletes a goal.
type DeleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the goal deletion.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) error {
	if _, err := loadOwnedGoal(ctx, uc.goalRepo, input.OwnerID, input.GoalID); err != nil {
		return err
	}
	if err := uc.goalRepo.Delete(ctx, input.GoalID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
