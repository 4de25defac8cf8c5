package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the layout accepted for birth dates and as-of dates.
const DateLayout = "2006-01-02"

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return t, nil
}

// AgeOn returns the whole-year age at atDate, rejecting birth dates in the future.
func AgeOn(birthDate, atDate time.Time) (int, error) {
	if birthDate.After(atDate) {
		return 0, fmt.Errorf("birth date %s is after %s", birthDate.Format(DateLayout), atDate.Format(DateLayout))
	}
	return Age(birthDate, atDate), nil
}

// AddYears adds years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}
