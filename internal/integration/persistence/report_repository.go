// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/persistence/model"
)

// reportRepository implements the adapter.ReportRepository interface.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(db *gorm.DB) adapter.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// Create creates a new saved report spec.
func (r *reportRepository) Create(ctx context.Context, spec *entity.ReportSpec) error {
	reportModel := model.ReportFromEntity(spec)
	result := r.db.WithContext(ctx).Create(reportModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a saved report spec by its ID.
func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ReportSpec, error) {
	var reportModel model.ReportModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&reportModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReportNotFound
		}
		return nil, result.Error
	}
	return reportModel.ToEntity(), nil
}

// FindByOwner retrieves all saved report specs of a user.
func (r *reportRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.ReportSpec, error) {
	var reportModels []model.ReportModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&reportModels)
	if result.Error != nil {
		return nil, result.Error
	}

	specs := make([]*entity.ReportSpec, len(reportModels))
	for i, rm := range reportModels {
		specs[i] = rm.ToEntity()
	}
	return specs, nil
}

// Update updates an existing saved report spec.
func (r *reportRepository) Update(ctx context.Context, spec *entity.ReportSpec) error {
	reportModel := model.ReportFromEntity(spec)
	result := r.db.WithContext(ctx).Save(reportModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a saved report spec.
func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ReportModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrReportNotFound
	}
	return nil
}
