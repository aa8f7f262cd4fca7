package presenter

import (
	"fmt"
	"time"
)

// FormatTimeSince formats the age of a run as "X ago", e.g. "12 seconds ago",
// "5 minutes ago", "2.5 hours ago" or "3 days ago".
func FormatTimeSince(t time.Time) string {
	return formatAge(time.Since(t), false)
}

// FormatTimeSinceCompact is the table-friendly form: "12s ago", "5m ago", "2.5h ago", "3d ago".
func FormatTimeSinceCompact(t time.Time) string {
	return formatAge(time.Since(t), true)
}

func formatAge(d time.Duration, compact bool) string {
	if d < 0 {
		d = 0
	}

	var value, unit, short string
	switch {
	case d < time.Minute:
		value, unit, short = fmt.Sprintf("%.0f", d.Seconds()), "seconds", "s"
	case d < time.Hour:
		value, unit, short = fmt.Sprintf("%.0f", d.Minutes()), "minutes", "m"
	case d < 24*time.Hour:
		value, unit, short = fmt.Sprintf("%.1f", d.Hours()), "hours", "h"
	default:
		value, unit, short = fmt.Sprintf("%.0f", d.Hours()/24), "days", "d"
	}

	if compact {
		return value + short + " ago"
	}
	return value + " " + unit + " ago"
}
