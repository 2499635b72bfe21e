package resolver

import (
	"errors"
	"testing"
	"time"

	"github.com/mizanlabs/athan"
)

func testData() athan.YearlyPrayerData {
	return athan.YearlyPrayerData{
		"april": {
			DateRanges: []athan.DateRange{
				{
					FromDate: "04-11", ToDate: "04-15",
					Times: athan.PrayerTimeSet{athan.PrayerFajr: "04:26", athan.PrayerIsha: "19:41"},
				},
				{
					FromDate: "04-16", ToDate: "04-20",
					Times: athan.PrayerTimeSet{athan.PrayerFajr: "04:23", athan.PrayerIsha: "19:44"},
				},
			},
		},
		"may": {
			DateRanges: []athan.DateRange{
				{
					FromDate: "05-01", ToDate: "05-05",
					Times: athan.PrayerTimeSet{athan.PrayerFajr: "04:02", athan.PrayerIsha: "20:05"},
				},
			},
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveExactMatch(t *testing.T) {
	r := New(testData())

	got, err := r.Resolve(date(2025, time.April, 11))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Interpolated {
		t.Error("exact from_date match must not be interpolated")
	}
	if got.Times[athan.PrayerFajr] != "04:26" {
		t.Errorf("expected fajr 04:26, got %s", got.Times[athan.PrayerFajr])
	}
	if !got.SourceRangeDate.Equal(date(2025, time.April, 11)) {
		t.Errorf("unexpected source range date %v", got.SourceRangeDate)
	}
}

func TestResolveInsideRange(t *testing.T) {
	r := New(testData())

	got, err := r.Resolve(date(2025, time.April, 14))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Interpolated {
		t.Error("date inside a range's [from, to] span is an exact match")
	}
	if got.Times[athan.PrayerFajr] != "04:26" {
		t.Errorf("expected fajr 04:26, got %s", got.Times[athan.PrayerFajr])
	}
}

func TestResolveInterpolatedGap(t *testing.T) {
	// April 21-30 is not covered by any range; the April 16 range anchors it.
	r := New(testData())

	got, err := r.Resolve(date(2025, time.April, 25))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !got.Interpolated {
		t.Error("gap date should be interpolated")
	}
	if got.Times[athan.PrayerFajr] != "04:23" {
		t.Errorf("expected fajr 04:23 from the April 16 range, got %s", got.Times[athan.PrayerFajr])
	}
	if !got.SourceRangeDate.Equal(date(2025, time.April, 16)) {
		t.Errorf("expected source range 2025-04-16, got %v", got.SourceRangeDate)
	}
}

// The example from the dataset documentation: ranges at 04-11 and 04-16,
// resolving the 13th reuses the 11th's times.
func TestResolveDocumentedExample(t *testing.T) {
	r := New(testData())

	got, err := r.Resolve(date(2025, time.April, 13))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Interpolated {
		// 04-13 sits inside [04-11, 04-15], so containment wins here.
		t.Error("expected containment match for 2025-04-13")
	}
	if got.Times[athan.PrayerFajr] != "04:26" {
		t.Errorf("expected fajr 04:26, got %s", got.Times[athan.PrayerFajr])
	}
	if !got.SourceRangeDate.Equal(date(2025, time.April, 11)) {
		t.Errorf("expected source range 2025-04-11, got %v", got.SourceRangeDate)
	}
}

func TestResolveBetweenRangesWithoutContainment(t *testing.T) {
	data := athan.YearlyPrayerData{
		"april": {
			DateRanges: []athan.DateRange{
				{FromDate: "04-11", ToDate: "04-11", Times: athan.PrayerTimeSet{athan.PrayerFajr: "04:26"}},
				{FromDate: "04-16", ToDate: "04-16", Times: athan.PrayerTimeSet{athan.PrayerFajr: "04:23"}},
			},
		},
	}
	r := New(data)

	got, err := r.Resolve(date(2025, time.April, 13))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !got.Interpolated {
		t.Error("date strictly between checkpoints should be interpolated")
	}
	if got.Times[athan.PrayerFajr] != "04:26" {
		t.Errorf("expected earlier range's fajr 04:26, got %s", got.Times[athan.PrayerFajr])
	}
	if !got.SourceRangeDate.Equal(date(2025, time.April, 11)) {
		t.Errorf("expected source range 2025-04-11, got %v", got.SourceRangeDate)
	}
}

func TestResolveCrossesMonthBoundary(t *testing.T) {
	// April 28 anchors to April 16's range even though May ranges exist,
	// because May 1 is after the target.
	r := New(testData())

	got, err := r.Resolve(date(2025, time.April, 28))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Times[athan.PrayerFajr] != "04:23" {
		t.Errorf("expected fajr 04:23, got %s", got.Times[athan.PrayerFajr])
	}
}

func TestResolveOpenEndedTail(t *testing.T) {
	// After the last range of the dataset, resolution stays anchored to it.
	r := New(testData())

	got, err := r.Resolve(date(2025, time.December, 31))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !got.Interpolated {
		t.Error("dates past the last range should be interpolated")
	}
	if got.Times[athan.PrayerFajr] != "04:02" {
		t.Errorf("expected the May range's fajr 04:02, got %s", got.Times[athan.PrayerFajr])
	}
}

func TestResolveBeforeDataset(t *testing.T) {
	r := New(testData())

	_, err := r.Resolve(date(2025, time.January, 5))
	if !errors.Is(err, athan.ErrNoData) {
		t.Errorf("expected ErrNoData for a date before the first range, got %v", err)
	}
}

func TestResolvePreservesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	r := New(testData())

	got, err := r.Resolve(time.Date(2025, time.April, 13, 22, 15, 0, 0, loc))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Date.Location() != loc {
		t.Error("resolved date should keep the target's location")
	}
	if got.Date.Hour() != 0 {
		t.Error("resolved date should be truncated to midnight")
	}
}
