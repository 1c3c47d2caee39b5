// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/persistence/model"
)

// transferRepository implements the adapter.TransferRepository interface. A
// transfer and its items and conversions are always written together; a
// transfer persisted without all its items would read as unbalanced.
type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository instance.
func NewTransferRepository(db *gorm.DB) adapter.TransferRepository {
	return &transferRepository{
		db: db,
	}
}

// Create creates a transfer with its items and conversions.
func (r *transferRepository) Create(ctx context.Context, transfer *entity.Transfer) error {
	transferModel := model.TransferFromEntity(transfer)
	result := r.db.WithContext(ctx).Create(transferModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transfer with its items and conversions.
func (r *transferRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transfer, error) {
	var transferModel model.TransferModel
	result := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Conversions").
		Where("id = ?", id).
		First(&transferModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransferNotFound
		}
		return nil, result.Error
	}
	return transferModel.ToEntity(), nil
}

// FindByOwnerAndDateRange retrieves all transfers of the owner whose day
// falls in [start, end], with items, ordered by day.
func (r *transferRepository) FindByOwnerAndDateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*entity.Transfer, error) {
	var transferModels []model.TransferModel
	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ?", ownerID).
		Where("day >= ? AND day <= ?", start, end).
		Order("day ASC, created_at ASC").
		Find(&transferModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transfers := make([]*entity.Transfer, len(transferModels))
	for i, tm := range transferModels {
		transfers[i] = tm.ToEntity()
	}
	return transfers, nil
}

// Replace atomically swaps a transfer's fields, items and conversions for
// the given replacement.
func (r *transferRepository) Replace(ctx context.Context, transfer *entity.Transfer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transfer_id = ?", transfer.ID).Delete(&model.TransferItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("transfer_id = ?", transfer.ID).Delete(&model.ConversionModel{}).Error; err != nil {
			return err
		}

		transferModel := model.TransferFromEntity(transfer)
		updates := map[string]interface{}{
			"description":           transferModel.Description,
			"day":                   transferModel.Day,
			"reference_currency_id": transferModel.ReferenceCurrencyID,
			"updated_at":            transferModel.UpdatedAt,
		}
		if err := tx.Model(&model.TransferModel{}).Where("id = ?", transfer.ID).Updates(updates).Error; err != nil {
			return err
		}

		if len(transferModel.Items) > 0 {
			if err := tx.Create(&transferModel.Items).Error; err != nil {
				return err
			}
		}
		if len(transferModel.Conversions) > 0 {
			if err := tx.Create(&transferModel.Conversions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete soft-deletes a transfer and removes its items and conversions.
func (r *transferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transfer_id = ?", id).Delete(&model.TransferItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("transfer_id = ?", id).Delete(&model.ConversionModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.TransferModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTransferNotFound
		}
		return nil
	})
}
