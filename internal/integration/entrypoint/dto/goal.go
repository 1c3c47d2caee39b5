package dto

import (
	"time"

	"github.com/finance-ledger/backend/internal/application/usecase/goal"
	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation. Value
// goals require a currency; percent goals measure against the parent
// category and carry none.
type CreateGoalRequest struct {
	Description          string  `json:"description" binding:"required,min=1,max=200"`
	CategoryID           string  `json:"category_id" binding:"required,uuid"`
	IncludeSubcategories bool    `json:"include_subcategories"`
	Type                 string  `json:"type" binding:"required,oneof=value percent"`
	Condition            string  `json:"condition" binding:"required,oneof=at_least at_most"`
	TargetValue          string  `json:"target_value" binding:"required"`
	CurrencyID           *string `json:"currency_id,omitempty" binding:"omitempty,uuid"`
	PeriodStart          string  `json:"period_start" binding:"required"`
	PeriodEnd            string  `json:"period_end" binding:"required"`
	Cyclic               bool    `json:"cyclic"`
}

// UpdateGoalRequest represents the request body for goal update. The
// category, type and currency are fixed at creation.
type UpdateGoalRequest struct {
	Description          string `json:"description" binding:"required,min=1,max=200"`
	IncludeSubcategories bool   `json:"include_subcategories"`
	Condition            string `json:"condition" binding:"required,oneof=at_least at_most"`
	TargetValue          string `json:"target_value" binding:"required"`
	PeriodStart          string `json:"period_start" binding:"required"`
	PeriodEnd            string `json:"period_end" binding:"required"`
	Cyclic               bool   `json:"cyclic"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID                   string    `json:"id"`
	Description          string    `json:"description"`
	CategoryID           string    `json:"category_id"`
	IncludeSubcategories bool      `json:"include_subcategories"`
	Type                 string    `json:"type"`
	Condition            string    `json:"condition"`
	TargetValue          string    `json:"target_value"`
	CurrencyID           *string   `json:"currency_id,omitempty"`
	PeriodStart          string    `json:"period_start"`
	PeriodEnd            string    `json:"period_end"`
	Cyclic               bool      `json:"cyclic"`
	Finished             bool      `json:"finished"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// GoalProgressResponse represents a goal's progress within its current window.
type GoalProgressResponse struct {
	CurrentValue    string `json:"current_value"`
	PercentComplete string `json:"percent_complete"`
	Achieved        bool   `json:"achieved"`
	Finished        bool   `json:"finished"`
	PeriodStart     string `json:"period_start"`
	PeriodEnd       string `json:"period_end"`
}

// GoalWithProgressResponse pairs a goal with its evaluated progress.
type GoalWithProgressResponse struct {
	GoalResponse
	Progress GoalProgressResponse `json:"progress"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalWithProgressResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	response := GoalResponse{
		ID:                   g.ID.String(),
		Description:          g.Description,
		CategoryID:           g.CategoryID.String(),
		IncludeSubcategories: g.IncludeSubcategories,
		Type:                 string(g.Type),
		Condition:            string(g.Condition),
		TargetValue:          g.TargetValue.StringFixed(2),
		PeriodStart:          g.PeriodStart.Format("2006-01-02"),
		PeriodEnd:            g.PeriodEnd.Format("2006-01-02"),
		Cyclic:               g.Cyclic,
		Finished:             g.Finished,
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
	if g.CurrencyID != nil {
		currencyID := g.CurrencyID.String()
		response.CurrencyID = &currencyID
	}
	return response
}

// ToGoalProgressResponse converts an evaluated Progress to a GoalProgressResponse DTO.
func ToGoalProgressResponse(progress *goal.Progress) GoalProgressResponse {
	return GoalProgressResponse{
		CurrentValue:    progress.CurrentValue.StringFixed(2),
		PercentComplete: progress.PercentComplete.StringFixed(2),
		Achieved:        progress.Achieved,
		Finished:        progress.Finished,
		PeriodStart:     progress.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       progress.PeriodEnd.Format("2006-01-02"),
	}
}

// ToGoalListResponse converts evaluated goals to GoalListResponse.
func ToGoalListResponse(goals []goal.GoalWithProgress) GoalListResponse {
	out := make([]GoalWithProgressResponse, len(goals))
	for i, item := range goals {
		out[i] = GoalWithProgressResponse{
			GoalResponse: ToGoalResponse(item.Goal),
			Progress:     ToGoalProgressResponse(item.Progress),
		}
	}
	return GoalListResponse{Goals: out}
}
