package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/usecase/exchange"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
)

// CurrencyController handles currency endpoints.
type CurrencyController struct {
	listUseCase   *exchange.ListCurrenciesUseCase
	createUseCase *exchange.CreateCurrencyUseCase
	deleteUseCase *exchange.DeleteCurrencyUseCase
}

// NewCurrencyController creates a new currency controller instance.
func NewCurrencyController(
	listUseCase *exchange.ListCurrenciesUseCase,
	createUseCase *exchange.CreateCurrencyUseCase,
	deleteUseCase *exchange.DeleteCurrencyUseCase,
) *CurrencyController {
	return &CurrencyController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /currencies requests.
func (c *CurrencyController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), exchange.ListCurrenciesInput{
		OwnerID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve currencies",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCurrencyListResponse(output.Currencies))
}

// Create handles POST /currencies requests.
func (c *CurrencyController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	var req dto.CreateCurrencyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidCurrencyCode),
		})
		return
	}

	input := exchange.CreateCurrencyInput{
		Code:   req.Code,
		Symbol: req.Symbol,
		Name:   req.Name,
	}
	if !req.Shared {
		input.OwnerID = &userID
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleCurrencyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCurrencyResponse(output.Currency))
}

// Delete handles DELETE /currencies/:id requests.
func (c *CurrencyController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	currencyID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid currency ID format",
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), exchange.DeleteCurrencyInput{
		ID:      currencyID,
		OwnerID: userID,
	})
	if err != nil {
		handleCurrencyError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleCurrencyError handles currency and exchange rate errors and returns
// appropriate HTTP responses.
func handleCurrencyError(ctx *gin.Context, err error) {
	var curErr *domainerror.CurrencyError
	if errors.As(err, &curErr) {
		ctx.JSON(statusForCurrencyError(curErr.Code), dto.ErrorResponse{
			Error: curErr.Message,
			Code:  string(curErr.Code),
		})
		return
	}
	if errors.Is(err, domainerror.ErrCurrencyNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Currency not found",
			Code:  string(domainerror.ErrCodeCurrencyNotFound),
		})
		return
	}
	if errors.Is(err, domainerror.ErrExchangeRateNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Exchange rate not found",
			Code:  string(domainerror.ErrCodeExchangeRateNotFound),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusForCurrencyError maps currency error codes to HTTP status codes.
func statusForCurrencyError(code domainerror.CurrencyErrorCode) int {
	switch code {
	case domainerror.ErrCodeCurrencyNotFound,
		domainerror.ErrCodeExchangeRateNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDuplicateCurrencyCode,
		domainerror.ErrCodeCurrencyInUse,
		domainerror.ErrCodeExchangeRateInUse:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidCurrencyCode,
		domainerror.ErrCodeSameCurrencyPair,
		domainerror.ErrCodeNonPositiveRate:
		return http.StatusBadRequest
	case domainerror.ErrCodeIncompatibleCurrencies,
		domainerror.ErrCodeNoRateFound:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
