package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/usecase/report"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles saved report definitions and report generation.
type ReportController struct {
	listUseCase     *report.ListReportsUseCase
	getUseCase      *report.GetReportUseCase
	saveUseCase     *report.SaveReportUseCase
	updateUseCase   *report.UpdateReportUseCase
	deleteUseCase   *report.DeleteReportUseCase
	generateUseCase *report.GenerateReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	listUseCase *report.ListReportsUseCase,
	getUseCase *report.GetReportUseCase,
	saveUseCase *report.SaveReportUseCase,
	updateUseCase *report.UpdateReportUseCase,
	deleteUseCase *report.DeleteReportUseCase,
	generateUseCase *report.GenerateReportUseCase,
) *ReportController {
	return &ReportController{
		listUseCase:     listUseCase,
		getUseCase:      getUseCase,
		saveUseCase:     saveUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		generateUseCase: generateUseCase,
	}
}

// List handles GET /reports requests.
func (c *ReportController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), report.ListReportsInput{
		OwnerID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve reports",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportSpecListResponse(output.Specs))
}

// Get handles GET /reports/:id requests.
func (c *ReportController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	reportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid report ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), report.GetReportInput{
		OwnerID:  userID,
		ReportID: reportID,
	})
	if err != nil {
		handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportSpecResponse(output.Spec))
}

// Save handles POST /reports requests.
func (c *ReportController) Save(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	var req dto.SaveReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	fields, err := parseSpecFields(&req.GenerateReportRequest)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), report.SaveReportInput{
		OwnerID:          userID,
		Name:             req.Name,
		Kind:             fields.kind,
		PeriodType:       fields.periodType,
		PeriodStart:      fields.periodStart,
		PeriodEnd:        fields.periodEnd,
		Division:         fields.division,
		Selections:       fields.selections,
		TargetCurrencyID: fields.targetCurrencyID,
		Algorithm:        fields.algorithm,
	})
	if err != nil {
		handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToReportSpecResponse(output.Spec))
}

// Update handles PUT /reports/:id requests.
func (c *ReportController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	reportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid report ID format",
		})
		return
	}

	var req dto.SaveReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	fields, err := parseSpecFields(&req.GenerateReportRequest)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), report.UpdateReportInput{
		OwnerID:          userID,
		ReportID:         reportID,
		Name:             req.Name,
		Kind:             fields.kind,
		PeriodType:       fields.periodType,
		PeriodStart:      fields.periodStart,
		PeriodEnd:        fields.periodEnd,
		Division:         fields.division,
		Selections:       fields.selections,
		TargetCurrencyID: fields.targetCurrencyID,
		Algorithm:        fields.algorithm,
	})
	if err != nil {
		handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportSpecResponse(output.Spec))
}

// Delete handles DELETE /reports/:id requests.
func (c *ReportController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	reportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid report ID format",
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), report.DeleteReportInput{
		OwnerID:  userID,
		ReportID: reportID,
	})
	if err != nil {
		handleReportError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Generate handles POST /reports/generate requests with an ad hoc spec.
func (c *ReportController) Generate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	var req dto.GenerateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	fields, err := parseSpecFields(&req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	spec := fields.toSpec(userID)
	c.generate(ctx, userID, spec)
}

// GenerateSaved handles POST /reports/:id/generate requests, evaluating a
// stored report definition.
func (c *ReportController) GenerateSaved(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User not identified"})
		return
	}

	reportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid report ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), report.GetReportInput{
		OwnerID:  userID,
		ReportID: reportID,
	})
	if err != nil {
		handleReportError(ctx, err)
		return
	}

	c.generate(ctx, userID, output.Spec)
}

func (c *ReportController) generate(ctx *gin.Context, userID uuid.UUID, spec *entity.ReportSpec) {
	output, err := c.generateUseCase.Execute(ctx.Request.Context(), report.GenerateReportInput{
		OwnerID: userID,
		Spec:    spec,
		Now:     time.Now().UTC(),
	})
	if err != nil {
		handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportResponse(output.Report))
}

// specFields carries a parsed report spec request body.
type specFields struct {
	kind             entity.ReportKind
	periodType       entity.PeriodType
	periodStart      *time.Time
	periodEnd        *time.Time
	division         entity.PeriodDivision
	selections       []entity.CategorySelection
	targetCurrencyID uuid.UUID
	algorithm        entity.BalanceAlgorithm
}

func (f *specFields) toSpec(ownerID uuid.UUID) *entity.ReportSpec {
	spec := entity.NewReportSpec("", f.kind, ownerID)
	spec.PeriodType = f.periodType
	spec.PeriodStart = f.periodStart
	spec.PeriodEnd = f.periodEnd
	spec.Selections = f.selections
	spec.TargetCurrencyID = f.targetCurrencyID
	if f.division != "" {
		spec.Division = f.division
	}
	if f.algorithm != "" {
		spec.Algorithm = f.algorithm
	}
	return spec
}

// parseSpecFields converts the wire representation of a report spec into
// domain values. Semantic validation stays in the use cases.
func parseSpecFields(req *dto.GenerateReportRequest) (*specFields, error) {
	fields := &specFields{
		kind:       entity.ReportKind(req.Kind),
		periodType: entity.PeriodType(req.PeriodType),
		division:   entity.PeriodDivision(req.Division),
		algorithm:  entity.BalanceAlgorithm(req.Algorithm),
	}

	start, err := parseOptionalDay(req.PeriodStart)
	if err != nil {
		return nil, errors.New("invalid period start format, expected YYYY-MM-DD")
	}
	fields.periodStart = start

	end, err := parseOptionalDay(req.PeriodEnd)
	if err != nil {
		return nil, errors.New("invalid period end format, expected YYYY-MM-DD")
	}
	fields.periodEnd = end

	targetCurrencyID, err := uuid.Parse(req.TargetCurrencyID)
	if err != nil {
		return nil, errors.New("invalid target currency ID format")
	}
	fields.targetCurrencyID = targetCurrencyID

	fields.selections = make([]entity.CategorySelection, len(req.Selections))
	for i, selection := range req.Selections {
		categoryID, err := uuid.Parse(selection.CategoryID)
		if err != nil {
			return nil, errors.New("invalid selection category ID format")
		}
		fields.selections[i] = entity.CategorySelection{
			CategoryID:     categoryID,
			IncludeSubtree: selection.IncludeSubtree,
		}
	}

	return fields, nil
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func handleReportError(ctx *gin.Context, err error) {
	var rptErr *domainerror.ReportError
	if errors.As(err, &rptErr) {
		ctx.JSON(statusForReportError(rptErr.Code), dto.ErrorResponse{
			Error: rptErr.Message,
			Code:  string(rptErr.Code),
		})
		return
	}
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(statusForCategoryError(catErr.Code), dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}
	if errors.Is(err, domainerror.ErrReportNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Report not found",
			Code:  string(domainerror.ErrCodeReportNotFound),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusForReportError maps report error codes to HTTP status codes.
func statusForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeReportNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidReportKind,
		domainerror.ErrCodeInvalidPeriod,
		domainerror.ErrCodeInvalidPeriodDivision,
		domainerror.ErrCodeInvalidBalanceAlgorithm,
		domainerror.ErrCodeEmptyCategorySelection:
		return http.StatusBadRequest
	case domainerror.ErrCodeReportRateMissing:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
