// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportKind discriminates the three report shapes. Reports are one value
// with a kind tag, not a type hierarchy.
type ReportKind string

const (
	// ReportKindFlow aggregates values over time buckets.
	ReportKindFlow ReportKind = "flow"
	// ReportKindShare computes each category's percentage of the total.
	ReportKindShare ReportKind = "share"
	// ReportKindValue computes each category's absolute value.
	ReportKindValue ReportKind = "value"
)

// IsValidReportKind reports whether k is one of the known report kinds.
func IsValidReportKind(k ReportKind) bool {
	return k == ReportKindFlow || k == ReportKindShare || k == ReportKindValue
}

// PeriodType represents a period specification. Relative periods are resolved
// against "now" at query time; SELECTED uses the explicit start/end supplied.
type PeriodType string

const (
	PeriodThisMonth PeriodType = "this_month"
	PeriodLastMonth PeriodType = "last_month"
	PeriodThisYear  PeriodType = "this_year"
	PeriodLastYear  PeriodType = "last_year"
	PeriodAllTime   PeriodType = "all_time"
	PeriodSelected  PeriodType = "selected"
)

// IsValidPeriodType reports whether p is one of the known period types.
func IsValidPeriodType(p PeriodType) bool {
	switch p {
	case PeriodThisMonth, PeriodLastMonth, PeriodThisYear, PeriodLastYear, PeriodAllTime, PeriodSelected:
		return true
	}
	return false
}

// PeriodDivision controls the bucket width of flow reports.
type PeriodDivision string

const (
	DivisionDay     PeriodDivision = "day"
	DivisionWeek    PeriodDivision = "week"
	DivisionMonth   PeriodDivision = "month"
	DivisionQuarter PeriodDivision = "quarter"
	DivisionYear    PeriodDivision = "year"
)

// IsValidPeriodDivision reports whether d is one of the known divisions.
func IsValidPeriodDivision(d PeriodDivision) bool {
	switch d {
	case DivisionDay, DivisionWeek, DivisionMonth, DivisionQuarter, DivisionYear:
		return true
	}
	return false
}

// BalanceAlgorithm selects how multi-currency values are reconciled when a
// report aggregates transfers recorded in several currencies.
type BalanceAlgorithm string

const (
	// AlgorithmShowAllCurrencies groups output per currency, no conversion.
	AlgorithmShowAllCurrencies BalanceAlgorithm = "show_all_currencies"
	// AlgorithmNewestExchanges always uses the most-recently-dated rate.
	AlgorithmNewestExchanges BalanceAlgorithm = "calculate_with_newest_exchanges"
	// AlgorithmClosestToTransaction uses the rate dated nearest the
	// transfer's date, ties broken toward the earlier rate.
	AlgorithmClosestToTransaction BalanceAlgorithm = "calculate_with_exchanges_closest_to_transaction"
	// AlgorithmNewestExchangesBut prefers an exact-date rate and falls back
	// to the newest one.
	AlgorithmNewestExchangesBut BalanceAlgorithm = "calculate_with_newest_exchanges_but"
	// AlgorithmClosestToTransactionBut prefers an exact-date rate and falls
	// back to the closest one.
	AlgorithmClosestToTransactionBut BalanceAlgorithm = "calculate_with_exchanges_closest_to_transaction_but"
)

// IsValidBalanceAlgorithm reports whether a is one of the known algorithms.
func IsValidBalanceAlgorithm(a BalanceAlgorithm) bool {
	switch a {
	case AlgorithmShowAllCurrencies, AlgorithmNewestExchanges, AlgorithmClosestToTransaction,
		AlgorithmNewestExchangesBut, AlgorithmClosestToTransactionBut:
		return true
	}
	return false
}

// CategorySelection names one category included in a report, optionally
// expanded to its whole subtree.
type CategorySelection struct {
	CategoryID     uuid.UUID
	IncludeSubtree bool
}

// ReportSpec is the query specification a report is generated from. It can be
// evaluated ad hoc or stored as a saved report definition.
type ReportSpec struct {
	ID               uuid.UUID
	Name             string
	Kind             ReportKind
	PeriodType       PeriodType
	PeriodStart      *time.Time
	PeriodEnd        *time.Time
	Division         PeriodDivision
	Selections       []CategorySelection
	TargetCurrencyID uuid.UUID
	Algorithm        BalanceAlgorithm
	OwnerID          uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time // Soft-delete support
}

// NewReportSpec creates a new ReportSpec entity.
func NewReportSpec(name string, kind ReportKind, ownerID uuid.UUID) *ReportSpec {
	now := time.Now().UTC()

	return &ReportSpec{
		ID:        uuid.New(),
		Name:      name,
		Kind:      kind,
		Division:  DivisionMonth,
		Algorithm: AlgorithmNewestExchanges,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Report is the generated output of a ReportSpec. Exactly one of the data
// fields is populated, matched by Kind.
type Report struct {
	Kind          ReportKind
	ResolvedStart time.Time
	ResolvedEnd   time.Time
	CurrencyID    uuid.UUID
	Flow          []FlowBucket
	Shares        []CategoryShare
	Values        []CategoryValue
}

// FlowBucket is one time bucket of a flow report.
type FlowBucket struct {
	Start time.Time
	End   time.Time
	Label string
	Value decimal.Decimal
	// ByCurrency carries per-currency totals when the report runs with
	// AlgorithmShowAllCurrencies; empty otherwise.
	ByCurrency map[uuid.UUID]decimal.Decimal
}

// CategoryShare is one category's percentage of the report total.
type CategoryShare struct {
	CategoryID uuid.UUID
	Value      decimal.Decimal
	Percent    decimal.Decimal
}

// CategoryValue is one category's absolute aggregated value.
type CategoryValue struct {
	CategoryID uuid.UUID
	Value      decimal.Decimal
	// ByCurrency carries per-currency totals when the report runs with
	// AlgorithmShowAllCurrencies; empty otherwise.
	ByCurrency map[uuid.UUID]decimal.Decimal
}
