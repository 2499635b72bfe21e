// Package resolver answers "what are the prayer times on this date" from the
// sparse yearly dataset. The dataset defines times for representative runs of
// days every few days; dates between checkpoints reuse the nearest preceding
// range's times.
package resolver

import (
	"fmt"
	"time"

	"github.com/mizanlabs/athan"
)

// Resolver resolves prayer-time sets for arbitrary calendar dates. It is
// read-only after construction and safe for concurrent use.
type Resolver struct {
	data athan.YearlyPrayerData
}

// New creates a resolver over an already-validated yearly dataset.
func New(data athan.YearlyPrayerData) *Resolver {
	return &Resolver{data: data}
}

type parsedRange struct {
	from  time.Time
	to    time.Time
	times athan.PrayerTimeSet
}

// Resolve returns the prayer times in effect on target's calendar day.
//
// An exact range containment wins. Otherwise the range with the latest
// from-date at or before the target (the anchor) supplies the times, marked
// interpolated; the last range in the dataset is open-ended. Dates before
// the first range have no anchor and return athan.ErrNoData.
func (r *Resolver) Resolve(target time.Time) (*athan.ResolvedPrayerTimes, error) {
	day := athan.Midnight(target)
	year := day.Year()
	loc := day.Location()

	var anchor *parsedRange
	var next *parsedRange

	for month, mt := range r.data {
		for i := range mt.DateRanges {
			dr := &mt.DateRanges[i]
			from, err := athan.ParseMonthDay(dr.FromDate, year, loc)
			if err != nil {
				return nil, fmt.Errorf("month %s: %w", month, err)
			}
			to, err := athan.ParseMonthDay(dr.ToDate, year, loc)
			if err != nil {
				return nil, fmt.Errorf("month %s: %w", month, err)
			}

			if !day.Before(from) && !day.After(to) {
				return &athan.ResolvedPrayerTimes{
					Date:            day,
					Times:           dr.Times,
					SourceRangeDate: from,
					Interpolated:    false,
				}, nil
			}

			pr := parsedRange{from: from, to: to, times: dr.Times}
			if !from.After(day) {
				if anchor == nil || from.After(anchor.from) {
					anchor = &pr
				}
			}
		}
	}

	if anchor == nil {
		return nil, fmt.Errorf("%w: %s precedes the dataset", athan.ErrNoData, day.Format("2006-01-02"))
	}

	// Second pass: the earliest range starting after the anchor. Ranges are
	// compared as full dates, so this spans month boundaries.
	for month, mt := range r.data {
		for i := range mt.DateRanges {
			dr := &mt.DateRanges[i]
			from, err := athan.ParseMonthDay(dr.FromDate, year, loc)
			if err != nil {
				return nil, fmt.Errorf("month %s: %w", month, err)
			}
			if from.After(anchor.from) && (next == nil || from.Before(next.from)) {
				to, _ := athan.ParseMonthDay(dr.ToDate, year, loc)
				next = &parsedRange{from: from, to: to, times: dr.Times}
			}
		}
	}

	if next != nil && !day.Before(next.from) {
		return nil, fmt.Errorf("%w: %s falls in an uncovered gap", athan.ErrNoData, day.Format("2006-01-02"))
	}

	return &athan.ResolvedPrayerTimes{
		Date:            day,
		Times:           anchor.times,
		SourceRangeDate: anchor.from,
		Interpolated:    true,
	}, nil
}
