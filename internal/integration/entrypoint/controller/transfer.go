package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/usecase/transfer"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
)

// TransferController handles transfer endpoints.
type TransferController struct {
	listUseCase   *transfer.ListTransfersUseCase
	getUseCase    *transfer.GetTransferUseCase
	createUseCase *transfer.CreateTransferUseCase
	updateUseCase *transfer.UpdateTransferUseCase
	deleteUseCase *transfer.DeleteTransferUseCase
}

// NewTransferController creates a new transfer controller instance.
func NewTransferController(
	listUseCase *transfer.ListTransfersUseCase,
	getUseCase *transfer.GetTransferUseCase,
	createUseCase *transfer.CreateTransferUseCase,
	updateUseCase *transfer.UpdateTransferUseCase,
	deleteUseCase *transfer.DeleteTransferUseCase,
) *TransferController {
	return &TransferController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transfers requests. The date range is selected with the
// "start" and "end" query parameters (YYYY-MM-DD, inclusive).
func (c *TransferController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	start, err := time.Parse("2006-01-02", ctx.DefaultQuery("start", "1970-01-01"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start date format, expected YYYY-MM-DD",
		})
		return
	}
	end, err := time.Parse("2006-01-02", ctx.DefaultQuery("end", time.Now().UTC().Format("2006-01-02")))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end date format, expected YYYY-MM-DD",
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transfer.ListTransfersInput{
		OwnerID: userID,
		Start:   start,
		End:     end,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve transfers",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransferListResponse(output.Transfers))
}

// Get handles GET /transfers/:id requests.
func (c *TransferController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	transferID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transfer ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transfer.GetTransferInput{
		OwnerID:    userID,
		TransferID: transferID,
	})
	if err != nil {
		handleTransferError(ctx, err)
		return
	}

	response := dto.TransferDetailResponse{
		TransferResponse: dto.ToTransferResponse(output.Transfer),
		CategoryIDs:      idsToStrings(output.CategoryIDs),
		CurrencyIDs:      idsToStrings(output.CurrencyIDs),
	}
	ctx.JSON(http.StatusOK, response)
}

// Create handles POST /transfers requests.
func (c *TransferController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	var req dto.CreateTransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInsufficientItems),
		})
		return
	}

	day, referenceCurrencyID, items, err := parseTransferBody(req.Day, req.ReferenceCurrencyID, req.Items)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transfer.CreateTransferInput{
		OwnerID:             userID,
		Description:         req.Description,
		Day:                 day,
		ReferenceCurrencyID: referenceCurrencyID,
		Items:               items,
	})
	if err != nil {
		handleTransferError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransferResponse(output.Transfer))
}

// Update handles PUT /transfers/:id requests. The transfer's items are
// replaced wholesale and the balance is validated again.
func (c *TransferController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	transferID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transfer ID format",
		})
		return
	}

	var req dto.UpdateTransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInsufficientItems),
		})
		return
	}

	day, referenceCurrencyID, items, err := parseTransferBody(req.Day, req.ReferenceCurrencyID, req.Items)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), transfer.UpdateTransferInput{
		OwnerID:             userID,
		TransferID:          transferID,
		Description:         req.Description,
		Day:                 day,
		ReferenceCurrencyID: referenceCurrencyID,
		Items:               items,
	})
	if err != nil {
		handleTransferError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransferResponse(output.Transfer))
}

// Delete handles DELETE /transfers/:id requests.
func (c *TransferController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	transferID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transfer ID format",
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), transfer.DeleteTransferInput{
		OwnerID:    userID,
		TransferID: transferID,
	})
	if err != nil {
		handleTransferError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseTransferBody converts the wire representation of a transfer body into
// use case input values.
func parseTransferBody(dayStr, referenceCurrencyStr string, reqItems []dto.TransferItemRequest) (time.Time, uuid.UUID, []transfer.ItemInput, error) {
	day, err := time.Parse("2006-01-02", dayStr)
	if err != nil {
		return time.Time{}, uuid.Nil, nil, errors.New("invalid day format, expected YYYY-MM-DD")
	}

	referenceCurrencyID, err := uuid.Parse(referenceCurrencyStr)
	if err != nil {
		return time.Time{}, uuid.Nil, nil, errors.New("invalid reference currency ID format")
	}

	items := make([]transfer.ItemInput, len(reqItems))
	for i, item := range reqItems {
		categoryID, err := uuid.Parse(item.CategoryID)
		if err != nil {
			return time.Time{}, uuid.Nil, nil, errors.New("invalid item category ID format")
		}
		currencyID, err := uuid.Parse(item.CurrencyID)
		if err != nil {
			return time.Time{}, uuid.Nil, nil, errors.New("invalid item currency ID format")
		}
		value, err := decimal.NewFromString(item.Value)
		if err != nil {
			return time.Time{}, uuid.Nil, nil, errors.New("invalid item value format")
		}
		items[i] = transfer.ItemInput{
			CategoryID:  categoryID,
			CurrencyID:  currencyID,
			Value:       value,
			Description: item.Description,
		}
	}

	return day, referenceCurrencyID, items, nil
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// handleTransferError handles transfer errors and returns appropriate HTTP responses.
func handleTransferError(ctx *gin.Context, err error) {
	var trfErr *domainerror.TransferError
	if errors.As(err, &trfErr) {
		ctx.JSON(statusForTransferError(trfErr.Code), dto.ErrorResponse{
			Error: trfErr.Message,
			Code:  string(trfErr.Code),
		})
		return
	}
	if errors.Is(err, domainerror.ErrTransferNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Transfer not found",
			Code:  string(domainerror.ErrCodeTransferNotFound),
		})
		return
	}
	if errors.Is(err, domainerror.ErrIncompatibleCurrencies) || errors.Is(err, domainerror.ErrNoRateFound) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: "No exchange rate registered for a currency pair in the transfer",
			Code:  string(domainerror.ErrCodeIncompatibleCurrencies),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusForTransferError maps transfer error codes to HTTP status codes.
func statusForTransferError(code domainerror.TransferErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransferNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransfer:
		return http.StatusForbidden
	case domainerror.ErrCodeInsufficientItems,
		domainerror.ErrCodeUnknownCategory,
		domainerror.ErrCodeUnknownCurrency,
		domainerror.ErrCodeUnknownExchangeRate:
		return http.StatusBadRequest
	case domainerror.ErrCodeUnbalancedTransfer:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
