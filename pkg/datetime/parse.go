// Package datetime provides date and time utility functions, including the
// calendar-year coverage computation used to scale partial ownership years.
package datetime

import (
	"time"

	"github.com/Rudyyyy/rentabimmo-engine/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the output
	// date format.
	DateTimeLayout = constants.DateTimeLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := time.Parse(DateTimeLayout, firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := time.Parse(DateTimeLayout, secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}

// YearCoverage returns the fraction of the given calendar year during which
// the [start, end] period is active. Interior years return exactly 1.0, the
// first and last years return the day fraction actually covered, and years
// outside the period return 0. The end date is treated as inclusive.
func YearCoverage(start, end time.Time, year int) float64 {
	if end.Before(start) {
		return 0
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	from := start
	if from.Before(yearStart) {
		from = yearStart
	}
	// Inclusive end date: the property is still held on its end day.
	to := end.AddDate(0, 0, 1)
	if to.After(yearEnd) {
		to = yearEnd
	}

	if !to.After(from) {
		return 0
	}

	covered := to.Sub(from).Hours()
	total := yearEnd.Sub(yearStart).Hours()
	return covered / total
}

// AdjustForCoverage scales a full-year monetary value by the coverage
// fraction of the year in question.
func AdjustForCoverage(value, coverage float64) float64 {
	return value * coverage
}
