package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/usecase/exchange"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
)

// ExchangeRateController handles exchange rate endpoints.
type ExchangeRateController struct {
	listUseCase   *exchange.ListExchangeRatesUseCase
	createUseCase *exchange.CreateExchangeRateUseCase
	updateUseCase *exchange.UpdateExchangeRateUseCase
	deleteUseCase *exchange.DeleteExchangeRateUseCase
}

// NewExchangeRateController creates a new exchange rate controller instance.
func NewExchangeRateController(
	listUseCase *exchange.ListExchangeRatesUseCase,
	createUseCase *exchange.CreateExchangeRateUseCase,
	updateUseCase *exchange.UpdateExchangeRateUseCase,
	deleteUseCase *exchange.DeleteExchangeRateUseCase,
) *ExchangeRateController {
	return &ExchangeRateController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /exchange-rates requests.
func (c *ExchangeRateController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), exchange.ListExchangeRatesInput{
		OwnerID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve exchange rates",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExchangeRateListResponse(output.ExchangeRates))
}

// Create handles POST /exchange-rates requests.
func (c *ExchangeRateController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	var req dto.CreateExchangeRateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	currencyAID, errA := uuid.Parse(req.CurrencyAID)
	currencyBID, errB := uuid.Parse(req.CurrencyBID)
	if errA != nil || errB != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid currency ID format",
		})
		return
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rate format",
			Code:  string(domainerror.ErrCodeNonPositiveRate),
		})
		return
	}

	day, err := parseOptionalDay(req.Day)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid day format, expected YYYY-MM-DD",
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), exchange.CreateExchangeRateInput{
		CurrencyAID: currencyAID,
		CurrencyBID: currencyBID,
		Rate:        rate,
		Day:         day,
		OwnerID:     userID,
	})
	if err != nil {
		handleCurrencyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExchangeRateResponse(output.ExchangeRate))
}

// Update handles PATCH /exchange-rates/:id requests.
func (c *ExchangeRateController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	rateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid exchange rate ID format",
		})
		return
	}

	var req dto.UpdateExchangeRateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rate format",
			Code:  string(domainerror.ErrCodeNonPositiveRate),
		})
		return
	}

	day, err := parseOptionalDay(req.Day)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid day format, expected YYYY-MM-DD",
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), exchange.UpdateExchangeRateInput{
		ID:      rateID,
		OwnerID: userID,
		Rate:    rate,
		Day:     day,
	})
	if err != nil {
		handleCurrencyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExchangeRateResponse(output.ExchangeRate))
}

// Delete handles DELETE /exchange-rates/:id requests.
func (c *ExchangeRateController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	rateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid exchange rate ID format",
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), exchange.DeleteExchangeRateInput{
		ID:      rateID,
		OwnerID: userID,
	})
	if err != nil {
		handleCurrencyError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseOptionalDay parses an optional YYYY-MM-DD date string.
func parseOptionalDay(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	day, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
