// Package firetime turns a prayer's "HH:MM" clock string into a concrete
// fire instant. All arithmetic is done on absolute time so subtracting an
// advance warning that crosses midnight lands on the previous calendar day
// instead of producing negative minutes.
package firetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// At returns the instant of a prayer on the given calendar day.
func At(date time.Time, hhmm string) (time.Time, error) {
	hour, minute, err := parseClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

// Compute returns the notification fire instant: the prayer time on the
// given day minus the advance warning. Callers filter results that are not
// strictly in the future; a past instant here is not an error.
func Compute(date time.Time, hhmm string, minutesBefore int) (time.Time, error) {
	at, err := At(date, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return at.Add(-time.Duration(minutesBefore) * time.Minute), nil
}

func parseClock(hhmm string) (hour, minute int, err error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad clock string %q", hhmm)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad hour in clock string %q", hhmm)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad minute in clock string %q", hhmm)
	}
	return hour, minute, nil
}
