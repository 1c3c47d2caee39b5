// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// ReportModel represents the reports table: stored report definitions. The
// category selections are kept as two positionally paired arrays.
type ReportModel struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name             string         `gorm:"type:varchar(100);not null"`
	Kind             string         `gorm:"type:varchar(10);not null"`
	PeriodType       string         `gorm:"type:varchar(20);not null"`
	PeriodStart      *time.Time     `gorm:"type:date"`
	PeriodEnd        *time.Time     `gorm:"type:date"`
	Division         string         `gorm:"type:varchar(10);not null"`
	CategoryIDs      pq.StringArray `gorm:"type:text[]"`
	SubtreeFlags     pq.BoolArray   `gorm:"type:boolean[]"`
	TargetCurrencyID uuid.UUID      `gorm:"type:uuid;not null"`
	Algorithm        string         `gorm:"type:varchar(60);not null"`
	OwnerID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt        time.Time      `gorm:"not null"`
	UpdatedAt        time.Time      `gorm:"not null"`
	DeletedAt        gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the ReportModel.
func (ReportModel) TableName() string {
	return "reports"
}

// ToEntity converts a ReportModel to a domain ReportSpec entity. Selections
// with an unparsable category id are dropped.
func (m *ReportModel) ToEntity() *entity.ReportSpec {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	selections := make([]entity.CategorySelection, 0, len(m.CategoryIDs))
	for i, raw := range m.CategoryIDs {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		selection := entity.CategorySelection{CategoryID: categoryID}
		if i < len(m.SubtreeFlags) {
			selection.IncludeSubtree = m.SubtreeFlags[i]
		}
		selections = append(selections, selection)
	}

	return &entity.ReportSpec{
		ID:               m.ID,
		Name:             m.Name,
		Kind:             entity.ReportKind(m.Kind),
		PeriodType:       entity.PeriodType(m.PeriodType),
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
		Division:         entity.PeriodDivision(m.Division),
		Selections:       selections,
		TargetCurrencyID: m.TargetCurrencyID,
		Algorithm:        entity.BalanceAlgorithm(m.Algorithm),
		OwnerID:          m.OwnerID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}

// ReportFromEntity creates a ReportModel from a domain ReportSpec entity.
func ReportFromEntity(spec *entity.ReportSpec) *ReportModel {
	var deletedAt gorm.DeletedAt
	if spec.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *spec.DeletedAt, Valid: true}
	}

	categoryIDs := make(pq.StringArray, len(spec.Selections))
	subtreeFlags := make(pq.BoolArray, len(spec.Selections))
	for i, selection := range spec.Selections {
		categoryIDs[i] = selection.CategoryID.String()
		subtreeFlags[i] = selection.IncludeSubtree
	}

	return &ReportModel{
		ID:               spec.ID,
		Name:             spec.Name,
		Kind:             string(spec.Kind),
		PeriodType:       string(spec.PeriodType),
		PeriodStart:      spec.PeriodStart,
		PeriodEnd:        spec.PeriodEnd,
		Division:         string(spec.Division),
		CategoryIDs:      categoryIDs,
		SubtreeFlags:     subtreeFlags,
		TargetCurrencyID: spec.TargetCurrencyID,
		Algorithm:        string(spec.Algorithm),
		OwnerID:          spec.OwnerID,
		CreatedAt:        spec.CreatedAt,
		UpdatedAt:        spec.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}
