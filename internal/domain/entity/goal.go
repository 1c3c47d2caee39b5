// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalType represents how a goal's target value is expressed.
type GoalType string

const (
	// GoalTypePercent targets a percentage of the parent category's total.
	GoalTypePercent GoalType = "percent"
	// GoalTypeValue targets an absolute monetary value.
	GoalTypeValue GoalType = "value"
)

// IsValidGoalType reports whether t is one of the known goal types.
func IsValidGoalType(t GoalType) bool {
	return t == GoalTypePercent || t == GoalTypeValue
}

// GoalCondition represents the completion condition of a goal.
type GoalCondition string

const (
	GoalConditionAtLeast GoalCondition = "at_least"
	GoalConditionAtMost  GoalCondition = "at_most"
)

// IsValidGoalCondition reports whether c is one of the known conditions.
func IsValidGoalCondition(c GoalCondition) bool {
	return c == GoalConditionAtLeast || c == GoalConditionAtMost
}

// Goal represents a target value for a category over a period window. The
// current value and percent complete are always derived from the report
// engine, never stored, so they cannot go stale.
type Goal struct {
	ID                   uuid.UUID
	Description          string
	CategoryID           uuid.UUID
	IncludeSubcategories bool
	Type                 GoalType
	Condition            GoalCondition
	TargetValue          decimal.Decimal
	CurrencyID           *uuid.UUID // nil for percent goals
	PeriodStart          time.Time
	PeriodEnd            time.Time
	Cyclic               bool
	Finished             bool
	OwnerID              uuid.UUID
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time // Soft-delete support
}

// NewGoal creates a new Goal entity.
func NewGoal(
	description string,
	categoryID uuid.UUID,
	includeSubcategories bool,
	goalType GoalType,
	condition GoalCondition,
	targetValue decimal.Decimal,
	currencyID *uuid.UUID,
	periodStart, periodEnd time.Time,
	cyclic bool,
	ownerID uuid.UUID,
) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:                   uuid.New(),
		Description:          description,
		CategoryID:           categoryID,
		IncludeSubcategories: includeSubcategories,
		Type:                 goalType,
		Condition:            condition,
		TargetValue:          targetValue,
		CurrencyID:           currencyID,
		PeriodStart:          periodStart,
		PeriodEnd:            periodEnd,
		Cyclic:               cyclic,
		OwnerID:              ownerID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// IsAchieved reports whether actualValue satisfies the goal's completion
// condition.
func (g *Goal) IsAchieved(actualValue decimal.Decimal) bool {
	if g.Condition == GoalConditionAtMost {
		return actualValue.LessThanOrEqual(g.TargetValue)
	}
	return actualValue.GreaterThanOrEqual(g.TargetValue)
}

// Finish marks the goal finished, clears the cyclic flag and closes the
// period window at now.
func (g *Goal) Finish(now time.Time) {
	g.Finished = true
	g.Cyclic = false
	g.PeriodEnd = now
	g.UpdatedAt = now
}

// IsFinished reports the observed state: a goal counts as finished once it
// was explicitly finished or its period end lies in the past.
func (g *Goal) IsFinished(now time.Time) bool {
	return g.Finished || g.PeriodEnd.Before(now)
}

// RollForward advances a cyclic goal's window by whole period lengths until
// it covers now. Non-cyclic and finished goals are left untouched.
func (g *Goal) RollForward(now time.Time) {
	if !g.Cyclic || g.Finished {
		return
	}
	length := g.PeriodEnd.Sub(g.PeriodStart)
	if length <= 0 {
		return
	}
	for g.PeriodEnd.Before(now) {
		g.PeriodStart = g.PeriodStart.Add(length)
		g.PeriodEnd = g.PeriodEnd.Add(length)
	}
}
