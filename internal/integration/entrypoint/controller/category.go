package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/usecase/category"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	getUseCase    *category.GetCategoryUseCase
	createUseCase *category.CreateCategoryUseCase
	moveUseCase   *category.MoveCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	getUseCase *category.GetCategoryUseCase,
	createUseCase *category.CreateCategoryUseCase,
	moveUseCase *category.MoveCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		moveUseCase:   moveUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		OwnerID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve categories",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Get handles GET /categories/:id requests. It returns the category with its
// position in the forest: ancestors, children and descendants.
func (c *CategoryController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), category.GetCategoryInput{
		OwnerID:    userID,
		CategoryID: categoryID,
	})
	if err != nil {
		handleCategoryError(ctx, err)
		return
	}

	response := dto.CategoryDetailResponse{
		CategoryResponse: dto.ToCategoryResponse(output.Category),
		IsTop:            output.IsTop,
		IsLeaf:           output.IsLeaf,
		Ancestors:        dto.ToCategoryListResponse(output.Ancestors).Categories,
		Children:         dto.ToCategoryListResponse(output.Children).Categories,
		Descendants:      dto.ToCategoryListResponse(output.Descendants).Categories,
	}
	ctx.JSON(http.StatusOK, response)
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := category.CreateCategoryInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Type:        entity.CategoryType(req.Type),
	}
	if req.ParentID != nil {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid parent category ID format",
			})
			return
		}
		input.ParentID = &parentID
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// Move handles POST /categories/:id/move requests.
func (c *CategoryController) Move(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	var req dto.MoveCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := category.MoveCategoryInput{
		OwnerID:    userID,
		CategoryID: categoryID,
	}
	if req.NewParentID != nil {
		newParentID, err := uuid.Parse(*req.NewParentID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid parent category ID format",
			})
			return
		}
		input.NewParentID = &newParentID
	}

	if err := c.moveUseCase.Execute(ctx.Request.Context(), input); err != nil {
		handleCategoryError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Delete handles DELETE /categories/:id requests. The children policy is
// selected with the "policy" query parameter: reject (default), cascade or
// reparent.
func (c *CategoryController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	policy := entity.DeletePolicyReject
	if raw := ctx.Query("policy"); raw != "" {
		policy = entity.DeletePolicy(raw)
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		OwnerID:    userID,
		CategoryID: categoryID,
		Policy:     policy,
	})
	if err != nil {
		handleCategoryError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleCategoryError handles category errors and returns appropriate HTTP responses.
func handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(statusForCategoryError(catErr.Code), dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
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

// statusForCategoryError maps category error codes to HTTP status codes.
func statusForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound,
		domainerror.ErrCodeParentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedCategory:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeInvalidCategoryName,
		domainerror.ErrCodeCategoryTypeMismatch,
		domainerror.ErrCodeInvalidDeletePolicy:
		return http.StatusBadRequest
	case domainerror.ErrCodeCycleDetected,
		domainerror.ErrCodeCategoryNotEmpty,
		domainerror.ErrCodeCategoryInUse:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
