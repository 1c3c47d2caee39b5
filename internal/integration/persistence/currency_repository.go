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

// currencyRepository implements the adapter.CurrencyRepository interface.
type currencyRepository struct {
	db *gorm.DB
}

// NewCurrencyRepository creates a new currency repository instance.
func NewCurrencyRepository(db *gorm.DB) adapter.CurrencyRepository {
	return &currencyRepository{
		db: db,
	}
}

// Create creates a new currency in the database.
func (r *currencyRepository) Create(ctx context.Context, currency *entity.Currency) error {
	currencyModel := model.CurrencyFromEntity(currency)
	result := r.db.WithContext(ctx).Create(currencyModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a currency by its ID.
func (r *currencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Currency, error) {
	var currencyModel model.CurrencyModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&currencyModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCurrencyNotFound
		}
		return nil, result.Error
	}
	return currencyModel.ToEntity(), nil
}

// FindSharedByCode retrieves the shared system currency with the code.
func (r *currencyRepository) FindSharedByCode(ctx context.Context, code string) (*entity.Currency, error) {
	var currencyModel model.CurrencyModel
	result := r.db.WithContext(ctx).
		Where("code = ? AND owner_id IS NULL", code).
		First(&currencyModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCurrencyNotFound
		}
		return nil, result.Error
	}
	return currencyModel.ToEntity(), nil
}

// FindVisibleToUser retrieves the user's own currencies plus the shared
// system currencies, ordered by code.
func (r *currencyRepository) FindVisibleToUser(ctx context.Context, userID uuid.UUID) ([]*entity.Currency, error) {
	var currencyModels []model.CurrencyModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ? OR owner_id IS NULL", userID).
		Order("code ASC").
		Find(&currencyModels)
	if result.Error != nil {
		return nil, result.Error
	}

	currencies := make([]*entity.Currency, len(currencyModels))
	for i, cm := range currencyModels {
		currencies[i] = cm.ToEntity()
	}
	return currencies, nil
}

// ExistsByCodeAndOwner checks whether a code is already taken within the
// owner scope.
func (r *currencyRepository) ExistsByCodeAndOwner(ctx context.Context, code string, ownerID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.CurrencyModel{}).Where("code = ?", code)
	if ownerID == nil {
		query = query.Where("owner_id IS NULL")
	} else {
		query = query.Where("owner_id = ?", *ownerID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountTransferItems counts transfer items referencing the currency.
func (r *currencyRepository) CountTransferItems(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransferItemModel{}).
		Where("currency_id = ?", id).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// Delete soft-deletes a currency.
func (r *currencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CurrencyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCurrencyNotFound
	}
	return nil
}
