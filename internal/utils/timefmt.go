package utils

import "time"

const (
	displayTimeLayout = "02/01/2006, 15:04:05"
	displayDateLayout = "02/01/2006"
)

// FormatTime renders an RFC 3339 timestamp as a display datetime
// string. Unparseable input is returned unchanged so a bad timestamp
// still shows up somewhere visible instead of an empty cell.
func FormatTime(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format(displayTimeLayout)
}

// FormatTimeToDateString renders an RFC 3339 timestamp date-only.
func FormatTimeToDateString(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format(displayDateLayout)
}
