package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/usecase/goal"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
)

// GoalController handles goal endpoints.
type GoalController struct {
	listUseCase   *goal.ListGoalsUseCase
	getUseCase    *goal.GetGoalUseCase
	createUseCase *goal.CreateGoalUseCase
	updateUseCase *goal.UpdateGoalUseCase
	finishUseCase *goal.FinishGoalUseCase
	deleteUseCase *goal.DeleteGoalUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	getUseCase *goal.GetGoalUseCase,
	createUseCase *goal.CreateGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	finishUseCase *goal.FinishGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		finishUseCase: finishUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /goals requests. Every goal comes with its progress
// evaluated against the current ledger.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		OwnerID: userID,
		Now:     time.Now().UTC(),
	})
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		OwnerID: userID,
		GoalID:  goalID,
		Now:     time.Now().UTC(),
	})
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	response := dto.GoalWithProgressResponse{
		GoalResponse: dto.ToGoalResponse(output.Goal),
		Progress:     dto.ToGoalProgressResponse(output.Progress),
	}
	ctx.JSON(http.StatusOK, response)
}

// Progress handles GET /goals/:id/progress requests.
func (c *GoalController) Progress(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		OwnerID: userID,
		GoalID:  goalID,
		Now:     time.Now().UTC(),
	})
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalProgressResponse(output.Progress))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	targetValue, err := decimal.NewFromString(req.TargetValue)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid target value format",
		})
		return
	}

	periodStart, periodEnd, err := parseGoalPeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	input := goal.CreateGoalInput{
		OwnerID:              userID,
		Description:          req.Description,
		CategoryID:           categoryID,
		IncludeSubcategories: req.IncludeSubcategories,
		Type:                 entity.GoalType(req.Type),
		Condition:            entity.GoalCondition(req.Condition),
		TargetValue:          targetValue,
		PeriodStart:          periodStart,
		PeriodEnd:            periodEnd,
		Cyclic:               req.Cyclic,
	}
	if req.CurrencyID != nil {
		currencyID, err := uuid.Parse(*req.CurrencyID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid currency ID format",
			})
			return
		}
		input.CurrencyID = &currencyID
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	targetValue, err := decimal.NewFromString(req.TargetValue)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid target value format",
		})
		return
	}

	periodStart, periodEnd, err := parseGoalPeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), goal.UpdateGoalInput{
		OwnerID:              userID,
		GoalID:               goalID,
		Description:          req.Description,
		IncludeSubcategories: req.IncludeSubcategories,
		Condition:            entity.GoalCondition(req.Condition),
		TargetValue:          targetValue,
		PeriodStart:          periodStart,
		PeriodEnd:            periodEnd,
		Cyclic:               req.Cyclic,
	})
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Finish handles POST /goals/:id/finish requests. Finishing is terminal.
func (c *GoalController) Finish(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	output, err := c.finishUseCase.Execute(ctx.Request.Context(), goal.FinishGoalInput{
		OwnerID: userID,
		GoalID:  goalID,
	})
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		OwnerID: userID,
		GoalID:  goalID,
	})
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseGoalPeriod parses a goal's period window from its wire representation.
func parseGoalPeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid period start format, expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid period end format, expected YYYY-MM-DD")
	}
	return start, end, nil
}

// handleGoalError handles goal errors and returns appropriate HTTP responses.
func handleGoalError(ctx *gin.Context, err error) {
	var golErr *domainerror.GoalError
	if errors.As(err, &golErr) {
		ctx.JSON(statusForGoalError(golErr.Code), dto.ErrorResponse{
			Error: golErr.Message,
			Code:  string(golErr.Code),
		})
		return
	}
	var rptErr *domainerror.ReportError
	if errors.As(err, &rptErr) {
		ctx.JSON(statusForReportError(rptErr.Code), dto.ErrorResponse{
			Error: rptErr.Message,
			Code:  string(rptErr.Code),
		})
		return
	}
	if errors.Is(err, domainerror.ErrGoalNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Goal not found",
			Code:  string(domainerror.ErrCodeGoalNotFound),
		})
		return
	}
	if errors.Is(err, domainerror.ErrCategoryNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Category not found",
			Code:  string(domainerror.ErrCodeCategoryNotFound),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusForGoalError maps goal error codes to HTTP status codes.
func statusForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidGoalType,
		domainerror.ErrCodeInvalidGoalCondition,
		domainerror.ErrCodeInvalidGoalPeriod,
		domainerror.ErrCodeGoalCurrencyRequired,
		domainerror.ErrCodePercentGoalNeedsParent:
		return http.StatusBadRequest
	case domainerror.ErrCodeGoalAlreadyFinished:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
