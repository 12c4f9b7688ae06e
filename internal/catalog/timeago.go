package catalog

import (
	"fmt"
	"time"
)

// RelativeAge renders the distance between two instants as a coarse
// human-readable duration ("42 seconds", "3 hours", "1 month"). Used for
// the freshness badge on deal cards.
func RelativeAge(from, now time.Time) string {
	seconds := int(now.Sub(from).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return plural(seconds, "second")
	}
	minutes := seconds / 60
	if minutes < 60 {
		return plural(minutes, "minute")
	}
	hours := minutes / 60
	if hours < 24 {
		return plural(hours, "hour")
	}
	days := hours / 24
	if days < 30 {
		return plural(days, "day")
	}
	months := days / 30
	if months < 12 {
		return plural(months, "month")
	}
	return plural(months/12, "year")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
