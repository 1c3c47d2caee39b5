// Package goal contains the goal tracker use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// GoalWithProgress pairs a goal with its derived progress.
type GoalWithProgress struct {
	Goal     *entity.Goal
	Progress *Progress
}

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	OwnerID uuid.UUID
	Now     time.Time
}

// ListGoalsOutput represents the output of the goal listing.
type ListGoalsOutput struct {
	Goals []GoalWithProgress
}

// ListGoalsUseCase lists an owner's goals with their progress. Progress of
// independent goals is evaluated concurrently.
type ListGoalsUseCase struct {
	goalRepo  adapter.GoalRepository
	evaluator *ProgressEvaluator
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository, evaluator *ProgressEvaluator) *ListGoalsUseCase {
	return &ListGoalsUseCase{goalRepo: goalRepo, evaluator: evaluator}
}

// Execute lists the goals with progress.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	result := make([]GoalWithProgress, len(goals))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, g := range goals {
		i, g := i, g
		group.Go(func() error {
			progress, err := uc.evaluator.Evaluate(groupCtx, g, now)
			if err != nil {
				return err
			}
			result[i] = GoalWithProgress{Goal: g, Progress: progress}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &ListGoalsOutput{Goals: result}, nil
}

// GetGoalInput represents the input for fetching one goal.
type GetGoalInput struct {
	OwnerID uuid.UUID
	GoalID  uuid.UUID
	Now     time.Time
}

// GetGoalOutput represents the fetched goal with progress.
type GetGoalOutput struct {
	Goal     *entity.Goal
	Progress *Progress
}

// GetGoalUseCase fetches a goal together with its derived progress.
type GetGoalUseCase struct {
	goalRepo  adapter.GoalRepository
	evaluator *ProgressEvaluator
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository, evaluator *ProgressEvaluator) *GetGoalUseCase {
	return &GetGoalUseCase{goalRepo: goalRepo, evaluator: evaluator}
}

// Execute fetches the goal with progress.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	goal, err := loadOwnedGoal(ctx, uc.goalRepo, input.OwnerID, input.GoalID)
	if err != nil {
		return nil, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	progress, err := uc.evaluator.Evaluate(ctx, goal, now)
	if err != nil {
		return nil, err
	}
	return &GetGoalOutput{Goal: goal, Progress: progress}, nil
}

// loadOwnedGoal fetches a goal and masks other users' goals as not-found.
func loadOwnedGoal(ctx context.Context, repo adapter.GoalRepository, ownerID, goalID uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	if goal.OwnerID != ownerID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotFound,
			"goal not found",
			domainerror.ErrGoalNotFound,
		)
	}
	return goal, nil
}
