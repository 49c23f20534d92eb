package util

import "time"

// Today returns the current calendar date in canonical YYYY-MM-DD form.
// Engine functions take this as an explicit parameter so they stay
// deterministic; only the outermost callers reach for the real clock.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// MonthKey returns the YYYY-MM bucket key for a YYYY-MM-DD date.
func MonthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// AddMonths returns the month key n months after the given YYYY-MM key.
func AddMonths(monthKey string, n int) string {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return monthKey
	}
	return t.AddDate(0, n, 0).Format("2006-01")
}

// MonthLabel renders a YYYY-MM key as a readable label like "March 2026".
func MonthLabel(monthKey string) string {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return monthKey
	}
	return t.Format("January 2006")
}

// FirstOfMonth returns the first calendar day of a YYYY-MM key.
func FirstOfMonth(monthKey string) string {
	return monthKey + "-01"
}
