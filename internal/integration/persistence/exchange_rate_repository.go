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

// exchangeRateRepository implements the adapter.ExchangeRateRepository interface.
type exchangeRateRepository struct {
	db *gorm.DB
}

// NewExchangeRateRepository creates a new exchange rate repository instance.
func NewExchangeRateRepository(db *gorm.DB) adapter.ExchangeRateRepository {
	return &exchangeRateRepository{
		db: db,
	}
}

// Create creates a new exchange rate in the database.
func (r *exchangeRateRepository) Create(ctx context.Context, rate *entity.ExchangeRate) error {
	rateModel := model.ExchangeRateFromEntity(rate)
	result := r.db.WithContext(ctx).Create(rateModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an exchange rate by its ID.
func (r *exchangeRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ExchangeRate, error) {
	var rateModel model.ExchangeRateModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&rateModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExchangeRateNotFound
		}
		return nil, result.Error
	}
	return rateModel.ToEntity(), nil
}

// FindByPair retrieves every rate registered between the two currencies in
// either direction, visible to the given owner.
func (r *exchangeRateRepository) FindByPair(ctx context.Context, ownerID, currencyA, currencyB uuid.UUID) ([]*entity.ExchangeRate, error) {
	var rateModels []model.ExchangeRateModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("(currency_a_id = ? AND currency_b_id = ?) OR (currency_a_id = ? AND currency_b_id = ?)",
			currencyA, currencyB, currencyB, currencyA).
		Order("day DESC NULLS FIRST").
		Find(&rateModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rates := make([]*entity.ExchangeRate, len(rateModels))
	for i, rm := range rateModels {
		rates[i] = rm.ToEntity()
	}
	return rates, nil
}

// FindByOwner retrieves all exchange rates owned by a user.
func (r *exchangeRateRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.ExchangeRate, error) {
	var rateModels []model.ExchangeRateModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rateModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rates := make([]*entity.ExchangeRate, len(rateModels))
	for i, rm := range rateModels {
		rates[i] = rm.ToEntity()
	}
	return rates, nil
}

// CountConversions counts recorded conversions referencing the rate.
func (r *exchangeRateRepository) CountConversions(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.ConversionModel{}).
		Where("exchange_rate_id = ?", id).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// Update updates an existing exchange rate.
func (r *exchangeRateRepository) Update(ctx context.Context, rate *entity.ExchangeRate) error {
	rateModel := model.ExchangeRateFromEntity(rate)
	result := r.db.WithContext(ctx).Save(rateModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes an exchange rate.
func (r *exchangeRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ExchangeRateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExchangeRateNotFound
	}
	return nil
}
