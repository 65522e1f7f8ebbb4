package core

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates. All dates are naive
// local wall-clock values; no time zone handling applies.
const DateLayout = "2006-01-02"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// TodayStr returns today's local date as YYYY-MM-DD.
func TodayStr() string {
	return time.Now().Format(DateLayout)
}
