package ledger

import "time"

// DateKey truncates the instant to UTC midnight and returns it as epoch
// milliseconds. Every daily_sales row is keyed this way.
func DateKey(at time.Time) int64 {
	utc := at.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.UnixMilli()
}

// KeyTime converts a date key back into its UTC midnight instant.
func KeyTime(dateKey int64) time.Time {
	return time.UnixMilli(dateKey).UTC()
}

// MonthSpan returns the date keys of the first and last day of the month.
func MonthSpan(year int, month time.Month) (start, end int64) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.UnixMilli(), last.UnixMilli()
}
