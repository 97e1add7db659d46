package timeline

import "time"

// Bucket labels for grouping dated items relative to the current quarter.
const (
	BucketThisQuarter = "this-quarter"
	BucketNextQuarter = "next-quarter"
	BucketLater       = "later"
	BucketPast        = "past"
)

// QuarterStart returns the first day of the calendar quarter containing t,
// at midnight in t's location.
func QuarterStart(t time.Time) time.Time {
	quarterMonth := time.Month(((int(t.Month())-1)/3)*3 + 1)
	return time.Date(t.Year(), quarterMonth, 1, 0, 0, 0, 0, t.Location())
}

// NextQuarterStart returns the first day of the quarter after the one
// containing t.
func NextQuarterStart(t time.Time) time.Time {
	return QuarterStart(t).AddDate(0, 3, 0)
}

// Bucket classifies target relative to now's calendar quarter. Any date
// strictly before today is past, even when it falls inside the current
// quarter.
func Bucket(target, now time.Time) string {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}

	if day(target).Before(day(now)) {
		return BucketPast
	}

	nextStart := NextQuarterStart(now)
	if target.Before(nextStart) {
		return BucketThisQuarter
	}
	if target.Before(nextStart.AddDate(0, 3, 0)) {
		return BucketNextQuarter
	}
	return BucketLater
}
