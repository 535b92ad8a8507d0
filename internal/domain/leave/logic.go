package leave

import "time"

// Overlaps reports whether two inclusive date ranges share at least one
// day. A single-day range (start == end) is a degenerate interval and
// still participates.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
