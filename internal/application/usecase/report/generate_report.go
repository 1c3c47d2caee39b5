// Package report contains the report engine: period resolution, aggregation
// over the ledger and saved report definitions.
package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/application/usecase/category"
	"github.com/finance-ledger/backend/internal/application/usecase/exchange"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// GenerateReportInput represents the input for report generation. The spec
// may be ad hoc or a stored definition loaded by the caller.
type GenerateReportInput struct {
	OwnerID uuid.UUID
	Spec    *entity.ReportSpec
	Now     time.Time
}

// GenerateReportOutput represents the output of report generation.
type GenerateReportOutput struct {
	Report *entity.Report
}

// GenerateReportUseCase evaluates a report spec against the ledger. The
// computation is pure given its inputs; generated payloads are cached for a
// short TTL keyed by the resolved spec.
type GenerateReportUseCase struct {
	transferRepo adapter.TransferRepository
	categoryRepo adapter.CategoryRepository
	resolver     *exchange.Resolver
	cache        adapter.ReportCache
	cacheTTL     time.Duration
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance. A
// nil cache disables caching.
func NewGenerateReportUseCase(
	transferRepo adapter.TransferRepository,
	categoryRepo adapter.CategoryRepository,
	resolver *exchange.Resolver,
	cache adapter.ReportCache,
	cacheTTL time.Duration,
) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		transferRepo: transferRepo,
		categoryRepo: categoryRepo,
		resolver:     resolver,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// Execute generates the report.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, input GenerateReportInput) (*GenerateReportOutput, error) {
	spec := input.Spec
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	start, end, err := ResolvePeriod(spec.PeriodType, spec.PeriodStart, spec.PeriodEnd, now)
	if err != nil {
		return nil, err
	}

	key := cacheKey(input.OwnerID, spec, start, end)
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("report cache read failed", "error", err)
		} else if cached != nil {
			return &GenerateReportOutput{Report: cached}, nil
		}
	}

	nodes, err := uc.categoryRepo.FindForestByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	forest := category.NewForest(nodes)

	// Each selection rolls its (optionally expanded) member categories up
	// into the selection's own category.
	rollup := make(map[uuid.UUID]uuid.UUID)
	for _, selection := range spec.Selections {
		node, ok := forest.Node(selection.CategoryID)
		if !ok {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"report selects a category that does not exist",
				domainerror.ErrCategoryNotFound,
			)
		}
		rollup[node.ID] = node.ID
		if selection.IncludeSubtree {
			for _, member := range forest.Descendants(node.ID) {
				rollup[member.ID] = node.ID
			}
		}
	}

	transfers, err := uc.transferRepo.FindByOwnerAndDateRange(ctx, input.OwnerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfers: %w", err)
	}

	generated := &entity.Report{
		Kind:          spec.Kind,
		ResolvedStart: start,
		ResolvedEnd:   end,
		CurrencyID:    spec.TargetCurrencyID,
	}

	switch spec.Kind {
	case entity.ReportKindFlow:
		generated.Flow, err = uc.flowBuckets(ctx, input.OwnerID, spec, start, end, transfers, rollup)
	case entity.ReportKindShare:
		generated.Shares, err = uc.categoryShares(ctx, input.OwnerID, spec, transfers, rollup)
	case entity.ReportKindValue:
		generated.Values, err = uc.categoryValues(ctx, input.OwnerID, spec, transfers, rollup)
	}
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, generated, uc.cacheTTL); err != nil {
			slog.Warn("report cache write failed", "error", err)
		}
	}

	return &GenerateReportOutput{Report: generated}, nil
}

func validateSpec(spec *entity.ReportSpec) error {
	if !entity.IsValidReportKind(spec.Kind) {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportKind,
			fmt.Sprintf("unknown report kind %q", spec.Kind),
			domainerror.ErrInvalidReportKind,
		)
	}
	if !entity.IsValidPeriodType(spec.PeriodType) {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidPeriod,
			fmt.Sprintf("unknown period type %q", spec.PeriodType),
			domainerror.ErrInvalidPeriod,
		)
	}
	if spec.Kind == entity.ReportKindFlow && !entity.IsValidPeriodDivision(spec.Division) {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidPeriodDivision,
			fmt.Sprintf("unknown period division %q", spec.Division),
			domainerror.ErrInvalidPeriodDivision,
		)
	}
	if !entity.IsValidBalanceAlgorithm(spec.Algorithm) {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidBalanceAlgorithm,
			fmt.Sprintf("unknown balance algorithm %q", spec.Algorithm),
			domainerror.ErrInvalidBalanceAlgorithm,
		)
	}
	// Shares are percentages of one common total, which requires a common
	// currency to sum in.
	if spec.Kind == entity.ReportKindShare && spec.Algorithm == entity.AlgorithmShowAllCurrencies {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidBalanceAlgorithm,
			"share reports cannot run without currency conversion",
			domainerror.ErrInvalidBalanceAlgorithm,
		)
	}
	if len(spec.Selections) == 0 {
		return domainerror.NewReportError(
			domainerror.ErrCodeEmptyCategorySelection,
			"report requires at least one category selection",
			domainerror.ErrEmptyCategorySelection,
		)
	}
	return nil
}

// convert turns an item's value into the report currency on the transfer's
// day, under the spec's balance algorithm. A missing rate fails the whole
// report; partial reports are never produced.
func (uc *GenerateReportUseCase) convert(ctx context.Context, ownerID uuid.UUID, item *entity.TransferItem, day time.Time, spec *entity.ReportSpec) (decimal.Decimal, error) {
	selection := exchange.SelectionForAlgorithm(spec.Algorithm)
	value, err := uc.resolver.Convert(ctx, ownerID, item.Value, item.CurrencyID, spec.TargetCurrencyID, &day, selection)
	if err != nil {
		return decimal.Decimal{}, domainerror.NewReportError(
			domainerror.ErrCodeReportRateMissing,
			"no exchange rate available for a report item",
			domainerror.ErrNoRateFound,
		)
	}
	return value, nil
}

func (uc *GenerateReportUseCase) flowBuckets(ctx context.Context, ownerID uuid.UUID, spec *entity.ReportSpec, start, end time.Time, transfers []*entity.Transfer, rollup map[uuid.UUID]uuid.UUID) ([]entity.FlowBucket, error) {
	windows := bucketSeries(start, end, spec.Division)
	buckets := make([]entity.FlowBucket, len(windows))
	for i, window := range windows {
		buckets[i] = entity.FlowBucket{
			Start: window.start,
			End:   window.end,
			Label: window.label,
			Value: decimal.Zero,
		}
		if spec.Algorithm == entity.AlgorithmShowAllCurrencies {
			buckets[i].ByCurrency = make(map[uuid.UUID]decimal.Decimal)
		}
	}

	for _, transfer := range transfers {
		index := bucketIndex(windows, transfer.Day)
		if index < 0 {
			continue
		}
		for _, item := range transfer.Items {
			if _, selected := rollup[item.CategoryID]; !selected {
				continue
			}
			if spec.Algorithm == entity.AlgorithmShowAllCurrencies {
				byCurrency := buckets[index].ByCurrency
				byCurrency[item.CurrencyID] = byCurrency[item.CurrencyID].Add(item.Value)
				continue
			}
			value, err := uc.convert(ctx, ownerID, item, transfer.Day, spec)
			if err != nil {
				return nil, err
			}
			buckets[index].Value = buckets[index].Value.Add(value)
		}
	}
	return buckets, nil
}

func (uc *GenerateReportUseCase) categoryValues(ctx context.Context, ownerID uuid.UUID, spec *entity.ReportSpec, transfers []*entity.Transfer, rollup map[uuid.UUID]uuid.UUID) ([]entity.CategoryValue, error) {
	totals := make(map[uuid.UUID]decimal.Decimal)
	byCurrency := make(map[uuid.UUID]map[uuid.UUID]decimal.Decimal)

	for _, transfer := range transfers {
		for _, item := range transfer.Items {
			target, selected := rollup[item.CategoryID]
			if !selected {
				continue
			}
			if spec.Algorithm == entity.AlgorithmShowAllCurrencies {
				if byCurrency[target] == nil {
					byCurrency[target] = make(map[uuid.UUID]decimal.Decimal)
				}
				byCurrency[target][item.CurrencyID] = byCurrency[target][item.CurrencyID].Add(item.Value)
				continue
			}
			value, err := uc.convert(ctx, ownerID, item, transfer.Day, spec)
			if err != nil {
				return nil, err
			}
			totals[target] = totals[target].Add(value)
		}
	}

	values := make([]entity.CategoryValue, 0, len(spec.Selections))
	for _, selection := range spec.Selections {
		entry := entity.CategoryValue{
			CategoryID: selection.CategoryID,
			Value:      totals[selection.CategoryID],
			ByCurrency: byCurrency[selection.CategoryID],
		}
		values = append(values, entry)
	}
	return values, nil
}

func (uc *GenerateReportUseCase) categoryShares(ctx context.Context, ownerID uuid.UUID, spec *entity.ReportSpec, transfers []*entity.Transfer, rollup map[uuid.UUID]uuid.UUID) ([]entity.CategoryShare, error) {
	values, err := uc.categoryValues(ctx, ownerID, spec, transfers, rollup)
	if err != nil {
		return nil, err
	}

	// Percentages are taken over absolute values so mixed-sign categories
	// still land in [0,100].
	total := decimal.Zero
	for _, value := range values {
		total = total.Add(value.Value.Abs())
	}

	shares := make([]entity.CategoryShare, 0, len(values))
	for _, value := range values {
		percent := decimal.Zero
		if !total.IsZero() {
			percent = value.Value.Abs().Div(total).Mul(decimal.NewFromInt(100)).Round(entity.MoneyScale)
		}
		shares = append(shares, entity.CategoryShare{
			CategoryID: value.CategoryID,
			Value:      value.Value,
			Percent:    percent,
		})
	}
	return shares, nil
}

func bucketIndex(windows []bucketWindow, day time.Time) int {
	day = dateOnly(day)
	for i, window := range windows {
		if !day.Before(window.start) && !day.After(window.end) {
			return i
		}
	}
	return -1
}

// cacheKey hashes the resolved spec so equal queries share one cache entry.
func cacheKey(ownerID uuid.UUID, spec *entity.ReportSpec, start, end time.Time) string {
	selections := make([]string, 0, len(spec.Selections))
	for _, selection := range spec.Selections {
		selections = append(selections, fmt.Sprintf("%s:%t", selection.CategoryID, selection.IncludeSubtree))
	}
	sort.Strings(selections)

	payload := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s",
		ownerID, spec.Kind, spec.Division, spec.Algorithm, spec.TargetCurrencyID,
		start.Format("2006-01-02"), end.Format("2006-01-02"), strings.Join(selections, ","))
	digest := sha256.Sum256([]byte(payload))
	return "report:" + hex.EncodeToString(digest[:])
}
