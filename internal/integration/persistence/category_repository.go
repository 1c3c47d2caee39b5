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

// categoryRepository implements the adapter.CategoryRepository interface.
// Structural writes update the nested-set bounds of every touched node in
// one transaction; a partial renumbering would corrupt the tree shape for
// concurrent readers.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindForestByOwner retrieves the owner's whole category forest in
// depth-first (left bound) order.
func (r *categoryRepository) FindForestByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("lft ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// CreateWithShift inserts a node and persists the shifted bounds of the
// nodes right of the insertion point in one transaction.
func (r *categoryRepository) CreateWithShift(ctx context.Context, node *entity.Category, shifted []*entity.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.CategoryFromEntity(node)).Error; err != nil {
			return err
		}
		return saveBounds(tx, shifted)
	})
}

// SaveBounds persists the structural fields of the given nodes in one
// transaction.
func (r *categoryRepository) SaveBounds(ctx context.Context, nodes []*entity.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveBounds(tx, nodes)
	})
}

// DeleteWithShift soft-deletes the given nodes and persists the closed-gap
// bounds of the remaining ones in one transaction.
func (r *categoryRepository) DeleteWithShift(ctx context.Context, deleted []*entity.Category, shifted []*entity.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, len(deleted))
		for i, node := range deleted {
			ids[i] = node.ID
		}
		if len(ids) > 0 {
			if err := tx.Delete(&model.CategoryModel{}, "id IN ?", ids).Error; err != nil {
				return err
			}
		}
		return saveBounds(tx, shifted)
	})
}

// CountTransferItems counts transfer items referencing any of the categories.
func (r *categoryRepository) CountTransferItems(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransferItemModel{}).
		Where("category_id IN ?", ids).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func saveBounds(tx *gorm.DB, nodes []*entity.Category) error {
	now := time.Now().UTC()
	for _, node := range nodes {
		updates := map[string]interface{}{
			"lft":        node.Lft,
			"rgt":        node.Rgt,
			"level":      node.Level,
			"parent_id":  node.ParentID,
			"updated_at": now,
		}
		if err := tx.Model(&model.CategoryModel{}).Where("id = ?", node.ID).Updates(updates).Error; err != nil {
			return err
		}
	}
	return nil
}
