// Package report contains the report engine: period resolution, aggregation
// over the ledger and saved report definitions.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// SaveReportInput represents the input for creating a saved report spec.
type SaveReportInput struct {
	OwnerID          uuid.UUID
	Name             string
	Kind             entity.ReportKind
	PeriodType       entity.PeriodType
	PeriodStart      *time.Time
	PeriodEnd        *time.Time
	Division         entity.PeriodDivision
	Selections       []entity.CategorySelection
	TargetCurrencyID uuid.UUID
	Algorithm        entity.BalanceAlgorithm
}

// SaveReportOutput represents the output of saved report spec creation.
type SaveReportOutput struct {
	Spec *entity.ReportSpec
}

// SaveReportUseCase stores a report definition for later generation.
type SaveReportUseCase struct {
	reportRepo adapter.ReportRepository
}

// NewSaveReportUseCase creates a new SaveReportUseCase instance.
func NewSaveReportUseCase(reportRepo adapter.ReportRepository) *SaveReportUseCase {
	return &SaveReportUseCase{reportRepo: reportRepo}
}

// Execute stores the report definition.
func (uc *SaveReportUseCase) Execute(ctx context.Context, input SaveReportInput) (*SaveReportOutput, error) {
	spec := entity.NewReportSpec(input.Name, input.Kind, input.OwnerID)
	spec.PeriodType = input.PeriodType
	spec.PeriodStart = input.PeriodStart
	spec.PeriodEnd = input.PeriodEnd
	if input.Division != "" {
		spec.Division = input.Division
	}
	if input.Algorithm != "" {
		spec.Algorithm = input.Algorithm
	}
	spec.Selections = input.Selections
	spec.TargetCurrencyID = input.TargetCurrencyID

	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	if err := uc.reportRepo.Create(ctx, spec); err != nil {
		return nil, fmt.Errorf("failed to save report spec: %w", err)
	}
	return &SaveReportOutput{Spec: spec}, nil
}

// ListReportsInput represents the input for listing saved report specs.
type ListReportsInput struct {
	OwnerID uuid.UUID
}

// ListReportsOutput represents the output of the saved report spec listing.
type ListReportsOutput struct {
	Specs []*entity.ReportSpec
}

// ListReportsUseCase lists an owner's saved report definitions.
type ListReportsUseCase struct {
	reportRepo adapter.ReportRepository
}

// NewListReportsUseCase creates a new ListReportsUseCase instance.
func NewListReportsUseCase(reportRepo adapter.ReportRepository) *ListReportsUseCase {
	return &ListReportsUseCase{reportRepo: reportRepo}
}

// Execute lists the saved report definitions.
func (uc *ListReportsUseCase) Execute(ctx context.Context, input ListReportsInput) (*ListReportsOutput, error) {
	specs, err := uc.reportRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list report specs: %w", err)
	}
	return &ListReportsOutput{Specs: specs}, nil
}

// GetReportInput represents the input for fetching one saved report spec.
type GetReportInput struct {
	OwnerID  uuid.UUID
	ReportID uuid.UUID
}

// GetReportOutput represents the fetched saved report spec.
type GetReportOutput struct {
	Spec *entity.ReportSpec
}

// GetReportUseCase fetches a saved report definition.
type GetReportUseCase struct {
	reportRepo adapter.ReportRepository
}

// NewGetReportUseCase creates a new GetReportUseCase instance.
func NewGetReportUseCase(reportRepo adapter.ReportRepository) *GetReportUseCase {
	return &GetReportUseCase{reportRepo: reportRepo}
}

// Execute fetches the saved report definition.
func (uc *GetReportUseCase) Execute(ctx context.Context, input GetReportInput) (*GetReportOutput, error) {
	spec, err := loadOwnedSpec(ctx, uc.reportRepo, input.OwnerID, input.ReportID)
	if err != nil {
		return nil, err
	}
	return &GetReportOutput{Spec: spec}, nil
}

// UpdateReportInput represents the input for replacing a saved report spec.
type UpdateReportInput struct {
	OwnerID          uuid.UUID
	ReportID         uuid.UUID
	Name             string
	Kind             entity.ReportKind
	PeriodType       entity.PeriodType
	PeriodStart      *time.Time
	PeriodEnd        *time.Time
	Division         entity.PeriodDivision
	Selections       []entity.CategorySelection
	TargetCurrencyID uuid.UUID
	Algorithm        entity.BalanceAlgorithm
}

// UpdateReportOutput represents the output of saved report spec replacement.
type UpdateReportOutput struct {
	Spec *entity.ReportSpec
}

// UpdateReportUseCase replaces a saved report definition.
type UpdateReportUseCase struct {
	reportRepo adapter.ReportRepository
}

// NewUpdateReportUseCase creates a new UpdateReportUseCase instance.
func NewUpdateReportUseCase(reportRepo adapter.ReportRepository) *UpdateReportUseCase {
	return &UpdateReportUseCase{reportRepo: reportRepo}
}

// Execute replaces the saved report definition.
func (uc *UpdateReportUseCase) Execute(ctx context.Context, input UpdateReportInput) (*UpdateReportOutput, error) {
	spec, err := loadOwnedSpec(ctx, uc.reportRepo, input.OwnerID, input.ReportID)
	if err != nil {
		return nil, err
	}

	spec.Name = input.Name
	spec.Kind = input.Kind
	spec.PeriodType = input.PeriodType
	spec.PeriodStart = input.PeriodStart
	spec.PeriodEnd = input.PeriodEnd
	spec.Division = input.Division
	spec.Selections = input.Selections
	spec.TargetCurrencyID = input.TargetCurrencyID
	spec.Algorithm = input.Algorithm
	spec.UpdatedAt = time.Now().UTC()

	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	if err := uc.reportRepo.Update(ctx, spec); err != nil {
		return nil, fmt.Errorf("failed to update report spec: %w", err)
	}
	return &UpdateReportOutput{Spec: spec}, nil
}

// DeleteReportInput represents the input for saved report spec deletion.
type DeleteReportInput struct {
	OwnerID  uuid.UUID
	ReportID uuid.UUID
}

// DeleteReportUseCase deletes a saved report definition.
type DeleteReportUseCase struct {
	reportRepo adapter.ReportRepository
}

// NewDeleteReportUseCase creates a new DeleteReportUseCase instance.
func NewDeleteReportUseCase(reportRepo adapter.ReportRepository) *DeleteReportUseCase {
	return &DeleteReportUseCase{reportRepo: reportRepo}
}

// Execute deletes the saved report definition.
func (uc *DeleteReportUseCase) Execute(ctx context.Context, input DeleteReportInput) error {
	if _, err := loadOwnedSpec(ctx, uc.reportRepo, input.OwnerID, input.ReportID); err != nil {
		return err
	}
	if err := uc.reportRepo.Delete(ctx, input.ReportID); err != nil {
		return fmt.Errorf("failed to delete report spec: %w", err)
	}
	return nil
}

// loadOwnedSpec fetches a spec and masks other users' specs as not-found.
func loadOwnedSpec(ctx context.Context, repo adapter.ReportRepository, ownerID, reportID uuid.UUID) (*entity.ReportSpec, error) {
	spec, err := repo.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, domainerror.ErrReportNotFound) {
			return nil, domainerror.NewReportError(
				domainerror.ErrCodeReportNotFound,
				"report not found",
				domainerror.ErrReportNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load report spec: %w", err)
	}
	if spec.OwnerID != ownerID {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeReportNotFound,
			"report not found",
			domainerror.ErrReportNotFound,
		)
	}
	return spec, nil
}
