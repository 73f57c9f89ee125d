package utils

import "time"

// AddIntervalToDate rolls a recurring payment date forward by one
// interval. Unknown intervals (including NONE) return the date as-is.
func AddIntervalToDate(date time.Time, interval string) time.Time {
	switch interval {
	case "DAILY":
		return date.AddDate(0, 0, 1)
	case "WEEKLY":
		return date.AddDate(0, 0, 7)
	case "MONTHLY":
		return date.AddDate(0, 1, 0)
	case "YEARLY":
		return date.AddDate(1, 0, 0)
	default:
		return date
	}
}
