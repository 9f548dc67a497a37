package format

import (
	"fmt"
	"time"
)

// absoluteLayout matches the short en-US locale date
const absoluteLayout = "1/2/2006"

// RelativeDate renders ts against now.
// Only the day of month is compared, so the same day in another month reads as "today".
// Same day: "N hours ago" (hour of day difference). Adjacent day: "1 day ago". Otherwise M/D/YYYY
func RelativeDate(ts, now time.Time) string {
	ts = ts.In(now.Location())

	days := now.Day() - ts.Day()
	if days < 0 {
		days = -days
	}

	switch days {
	case 0:
		return fmt.Sprintf("%d hours ago", now.Hour()-ts.Hour())
	case 1:
		return "1 day ago"
	default:
		return ts.Format(absoluteLayout)
	}
}
