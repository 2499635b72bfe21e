package athan

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// LoadYearlyData reads and validates the bundled yearly prayer-time resource.
func LoadYearlyData(path string) (YearlyPrayerData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yearly data: %w", err)
	}
	return ParseYearlyData(raw)
}

// ParseYearlyData decodes a yearly dataset from JSON and validates it.
func ParseYearlyData(raw []byte) (YearlyPrayerData, error) {
	var data YearlyPrayerData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode yearly data: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// Validate checks month keys, day-string syntax, and range ordering. A
// dataset that fails validation is rejected at load time rather than
// surfacing as resolution errors later.
func (d YearlyPrayerData) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("yearly data is empty")
	}
	// Use a fixed non-leap-adjacent year purely for ordering checks.
	const checkYear = 2001
	for month, mt := range d {
		if _, ok := monthNames[month]; !ok {
			return fmt.Errorf("unknown month key %q", month)
		}
		var prev time.Time
		for i, r := range mt.DateRanges {
			from, err := ParseMonthDay(r.FromDate, checkYear, time.UTC)
			if err != nil {
				return fmt.Errorf("month %s range %d: %w", month, i, err)
			}
			to, err := ParseMonthDay(r.ToDate, checkYear, time.UTC)
			if err != nil {
				return fmt.Errorf("month %s range %d: %w", month, i, err)
			}
			if to.Before(from) {
				return fmt.Errorf("month %s range %d: to_date %s before from_date %s", month, i, r.ToDate, r.FromDate)
			}
			if i > 0 && !from.After(prev) {
				return fmt.Errorf("month %s range %d: ranges out of order", month, i)
			}
			if len(r.Times) == 0 {
				return fmt.Errorf("month %s range %d: empty times", month, i)
			}
			prev = from
		}
	}
	return nil
}

// ParseMonthDay parses an "MM-DD" day string into a midnight instant in the
// given year and location.
func ParseMonthDay(s string, year int, loc *time.Location) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("bad day string %q", s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("bad month in day string %q", s)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("bad day in day string %q", s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalizes overflow (e.g. 02-30 becomes March); reject it.
	if int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("day string %q is not a real date", s)
	}
	return t, nil
}
