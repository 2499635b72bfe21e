// Package athan holds the shared domain types for the prayer-notification
// scheduling engine: the yearly prayer-time dataset, resolved per-day times,
// and the vocabulary of prayer names.
package athan

import (
	"errors"
	"time"
)

// Prayer identifies a single daily prayer.
type Prayer string

const (
	PrayerFajr    Prayer = "fajr"
	PrayerShuruq  Prayer = "shuruq"
	PrayerDhuha   Prayer = "dhuha"
	PrayerDhuhr   Prayer = "dhuhr"
	PrayerAsr     Prayer = "asr"
	PrayerMaghrib Prayer = "maghrib"
	PrayerIsha    Prayer = "isha"
)

// ObligatoryPrayers returns the five daily prayers that get reminders by
// default. Shuruq and dhuha are informational entries in the dataset and are
// only scheduled when explicitly configured.
func ObligatoryPrayers() []Prayer {
	return []Prayer{PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha}
}

// ErrNoData is returned when the dataset has no covering or anchor range for
// a requested date. Callers treat it as non-fatal: the date is skipped, the
// rest of the window is unaffected.
var ErrNoData = errors.New("no prayer data for date")

// PrayerTimeSet maps prayer names to "HH:MM" 24-hour time strings.
type PrayerTimeSet map[Prayer]string

// DateRange is a run of consecutive days sharing one set of prayer times.
// FromDate and ToDate are "MM-DD" day strings; the year is supplied at
// resolution time. Ranges within a month are ordered and non-overlapping but
// the dataset may leave gaps between them.
type DateRange struct {
	FromDate string        `json:"from_date"`
	ToDate   string        `json:"to_date"`
	Times    PrayerTimeSet `json:"times"`
}

// MonthlyPrayerTimes holds the date ranges defined for a single month.
type MonthlyPrayerTimes struct {
	DateRanges []DateRange `json:"date_ranges"`
}

// YearlyPrayerData is the bundled reference dataset, keyed by lowercase month
// name. It is loaded once at process start and never mutated.
type YearlyPrayerData map[string]MonthlyPrayerTimes

// ResolvedPrayerTimes is the result of a single dataset lookup. It is
// recomputed on demand and never persisted.
type ResolvedPrayerTimes struct {
	Date            time.Time
	Times           PrayerTimeSet
	SourceRangeDate time.Time
	Interpolated    bool
}

// Midnight truncates t to the start of its calendar day, preserving location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
