// Package exchange contains currency and exchange-rate use cases.
package exchange

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// RateSelection controls which of several registered rates for a pair is
// applied. The report engine threads this from the user's balance algorithm;
// the ledger uses SelectForDay.
type RateSelection string

const (
	// SelectNewest picks the most current rate: a dateless rate if one is
	// registered, otherwise the most-recently-dated one.
	SelectNewest RateSelection = "newest"
	// SelectClosest picks the rate dated nearest the reference date, ties
	// broken toward the earlier rate; dateless rates are the fallback.
	SelectClosest RateSelection = "closest"
	// SelectExactOrNewest picks an exact-date rate when one exists and
	// falls back to SelectNewest.
	SelectExactOrNewest RateSelection = "exact_or_newest"
	// SelectExactOrClosest picks an exact-date rate when one exists and
	// falls back to SelectClosest.
	SelectExactOrClosest RateSelection = "exact_or_closest"
	// SelectForDay is the ledger's balance policy: an exact-date rate,
	// else a dateless rate, else the rate dated nearest the day.
	SelectForDay RateSelection = "for_day"
)

// SelectionForAlgorithm maps a report balance algorithm to the rate selection
// policy it implies. AlgorithmShowAllCurrencies performs no conversion and
// has no mapping.
func SelectionForAlgorithm(a entity.BalanceAlgorithm) RateSelection {
	switch a {
	case entity.AlgorithmClosestToTransaction:
		return SelectClosest
	case entity.AlgorithmNewestExchangesBut:
		return SelectExactOrNewest
	case entity.AlgorithmClosestToTransactionBut:
		return SelectExactOrClosest
	default:
		return SelectNewest
	}
}

// ResolvedRate is the outcome of a rate lookup: the multiplier converting
// from the source into the target currency and the stored rate that
// justified it (for recording Conversions).
type ResolvedRate struct {
	Rate           decimal.Decimal
	ExchangeRateID uuid.UUID
}

// Resolver answers rate and conversion queries against the registered
// exchange rates. Multi-hop conversion chains are not supported: every pair
// needs a directly stored rate, in either direction.
type Resolver struct {
	rateRepo adapter.ExchangeRateRepository
}

// NewResolver creates a new Resolver instance.
func NewResolver(rateRepo adapter.ExchangeRateRepository) *Resolver {
	return &Resolver{rateRepo: rateRepo}
}

// Rate looks up the conversion rate between two distinct currencies. When the
// pair is only registered in the opposite direction the inverse (1/rate) is
// returned. asOf may be nil for policies that do not need a reference date.
func (r *Resolver) Rate(ctx context.Context, ownerID, from, to uuid.UUID, asOf *time.Time, sel RateSelection) (*ResolvedRate, error) {
	rates, err := r.rateRepo.FindByPair(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeIncompatibleCurrencies,
			"no direct or inverse rate registered for currency pair",
			domainerror.ErrIncompatibleCurrencies,
		)
	}

	chosen := pick(rates, asOf, sel)
	if chosen == nil {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeNoRateFound,
			"no applicable exchange rate for the requested date",
			domainerror.ErrNoRateFound,
		)
	}

	rate, ok := chosen.RateFor(from, to)
	if !ok {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeNoRateFound,
			"resolved rate does not cover the requested pair",
			domainerror.ErrNoRateFound,
		)
	}

	return &ResolvedRate{Rate: rate, ExchangeRateID: chosen.ID}, nil
}

// Convert converts an amount between currencies, rounding the result
// half-up to two decimal places. Identity conversions return the amount
// unchanged without touching the rate store.
func (r *Resolver) Convert(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal, from, to uuid.UUID, asOf *time.Time, sel RateSelection) (decimal.Decimal, error) {
	if from == to {
		return amount.Round(entity.MoneyScale), nil
	}

	resolved, err := r.Rate(ctx, ownerID, from, to, asOf, sel)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return amount.Mul(resolved.Rate).Round(entity.MoneyScale), nil
}

// CanConvert reports whether a direct or inverse rate is registered for the
// pair.
func (r *Resolver) CanConvert(ctx context.Context, ownerID, from, to uuid.UUID) (bool, error) {
	if from == to {
		return true, nil
	}
	rates, err := r.rateRepo.FindByPair(ctx, ownerID, from, to)
	if err != nil {
		return false, err
	}
	return len(rates) > 0, nil
}

// pick applies the selection policy over the candidate rates. Ties are broken
// deterministically: the more recently dated rate wins, then the smaller id.
func pick(rates []*entity.ExchangeRate, asOf *time.Time, sel RateSelection) *entity.ExchangeRate {
	var dated, dateless []*entity.ExchangeRate
	for _, rate := range rates {
		if rate.Day != nil {
			dated = append(dated, rate)
		} else {
			dateless = append(dateless, rate)
		}
	}
	sortByDayDescThenID(dated)
	sortByID(dateless)

	if asOf != nil && (sel == SelectExactOrNewest || sel == SelectExactOrClosest || sel == SelectForDay) {
		if exact := exactMatch(dated, *asOf); exact != nil {
			return exact
		}
	}

	switch sel {
	case SelectClosest, SelectExactOrClosest:
		if asOf == nil {
			return newest(dated, dateless)
		}
		if closest := closestTo(dated, *asOf); closest != nil {
			return closest
		}
		if len(dateless) > 0 {
			return dateless[0]
		}
		return nil
	case SelectForDay:
		if len(dateless) > 0 {
			return dateless[0]
		}
		if asOf != nil {
			return closestTo(dated, *asOf)
		}
		return newest(dated, nil)
	default: // SelectNewest, SelectExactOrNewest
		return newest(dated, dateless)
	}
}

// newest prefers a dateless "current" rate, then the latest dated one.
func newest(dated, dateless []*entity.ExchangeRate) *entity.ExchangeRate {
	if len(dateless) > 0 {
		return dateless[0]
	}
	if len(dated) > 0 {
		return dated[0]
	}
	return nil
}

// exactMatch returns the first rate dated exactly on day, or nil.
func exactMatch(dated []*entity.ExchangeRate, day time.Time) *entity.ExchangeRate {
	target := dateOnly(day)
	for _, rate := range dated {
		if dateOnly(*rate.Day).Equal(target) {
			return rate
		}
	}
	return nil
}

// closestTo returns the dated rate nearest the given day. When two rates are
// equally distant the earlier one wins.
func closestTo(dated []*entity.ExchangeRate, day time.Time) *entity.ExchangeRate {
	target := dateOnly(day)
	var best *entity.ExchangeRate
	var bestDistance time.Duration
	for _, rate := range dated {
		distance := dateOnly(*rate.Day).Sub(target)
		if distance < 0 {
			distance = -distance
		}
		switch {
		case best == nil, distance < bestDistance:
			best = rate
			bestDistance = distance
		case distance == bestDistance && rate.Day.Before(*best.Day):
			best = rate
		}
	}
	return best
}

func sortByDayDescThenID(rates []*entity.ExchangeRate) {
	sort.Slice(rates, func(i, j int) bool {
		if !rates[i].Day.Equal(*rates[j].Day) {
			return rates[i].Day.After(*rates[j].Day)
		}
		return rates[i].ID.String() < rates[j].ID.String()
	})
}

func sortByID(rates []*entity.ExchangeRate) {
	sort.Slice(rates, func(i, j int) bool {
		return rates[i].ID.String() < rates[j].ID.String()
	})
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
