// Package report contains the report engine: period resolution, aggregation
// over the ledger and saved report definitions.
package report

import (
	"fmt"
	"time"

	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// allTimeStart is the far-past lower bound used for all-time reports.
var allTimeStart = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// ResolvePeriod turns a period specification into explicit start and end
// dates against the given "now". Relative periods cover whole calendar
// units; a selected period passes the supplied bounds through unchanged.
func ResolvePeriod(periodType entity.PeriodType, start, end *time.Time, now time.Time) (time.Time, time.Time, error) {
	today := dateOnly(now)

	switch periodType {
	case entity.PeriodThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, -1), nil
	case entity.PeriodLastMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		return first, first.AddDate(0, 1, -1), nil
	case entity.PeriodThisYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC), nil
	case entity.PeriodLastYear:
		return time.Date(today.Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(today.Year()-1, time.December, 31, 0, 0, 0, 0, time.UTC), nil
	case entity.PeriodAllTime:
		return allTimeStart, today, nil
	case entity.PeriodSelected:
		if start == nil || end == nil || end.Before(*start) {
			return time.Time{}, time.Time{}, domainerror.NewReportError(
				domainerror.ErrCodeInvalidPeriod,
				"selected period requires an ordered start and end date",
				domainerror.ErrInvalidPeriod,
			)
		}
		return dateOnly(*start), dateOnly(*end), nil
	default:
		return time.Time{}, time.Time{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidPeriod,
			fmt.Sprintf("unknown period type %q", periodType),
			domainerror.ErrInvalidPeriod,
		)
	}
}

// bucketWindow is one time bucket of a flow report, bounds inclusive.
type bucketWindow struct {
	start time.Time
	end   time.Time
	label string
}

// bucketSeries splits [start, end] into calendar-aligned windows of the
// given division. The first and last windows are clamped to the period.
func bucketSeries(start, end time.Time, division entity.PeriodDivision) []bucketWindow {
	var windows []bucketWindow
	cursor := bucketStart(start, division)

	for !cursor.After(end) {
		next := bucketNext(cursor, division)

		windowStart := cursor
		if windowStart.Before(start) {
			windowStart = start
		}
		windowEnd := next.AddDate(0, 0, -1)
		if windowEnd.After(end) {
			windowEnd = end
		}

		windows = append(windows, bucketWindow{
			start: windowStart,
			end:   windowEnd,
			label: bucketLabel(cursor, division),
		})
		cursor = next
	}
	return windows
}

// bucketStart aligns a date down to its bucket's calendar boundary. Weeks
// start on Monday.
func bucketStart(day time.Time, division entity.PeriodDivision) time.Time {
	day = dateOnly(day)
	switch division {
	case entity.DivisionDay:
		return day
	case entity.DivisionWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case entity.DivisionMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	case entity.DivisionQuarter:
		quarterMonth := time.Month((int(day.Month())-1)/3*3 + 1)
		return time.Date(day.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
	case entity.DivisionYear:
		return time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return day
}

func bucketNext(start time.Time, division entity.PeriodDivision) time.Time {
	switch division {
	case entity.DivisionDay:
		return start.AddDate(0, 0, 1)
	case entity.DivisionWeek:
		return start.AddDate(0, 0, 7)
	case entity.DivisionMonth:
		return start.AddDate(0, 1, 0)
	case entity.DivisionQuarter:
		return start.AddDate(0, 3, 0)
	case entity.DivisionYear:
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 0, 1)
}

func bucketLabel(start time.Time, division entity.PeriodDivision) string {
	switch division {
	case entity.DivisionDay:
		return start.Format("2006-01-02")
	case entity.DivisionWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case entity.DivisionMonth:
		return start.Format("2006-01")
	case entity.DivisionQuarter:
		return fmt.Sprintf("%d-Q%d", start.Year(), (int(start.Month())-1)/3+1)
	case entity.DivisionYear:
		return start.Format("2006")
	}
	return start.Format("2006-01-02")
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
