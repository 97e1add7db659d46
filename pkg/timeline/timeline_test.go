package timeline

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuarterStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"start of Q1", date(2026, time.January, 1), date(2026, time.January, 1)},
		{"mid Q1", date(2026, time.February, 14), date(2026, time.January, 1)},
		{"end of Q1", date(2026, time.March, 31), date(2026, time.January, 1)},
		{"mid Q2", date(2026, time.May, 20), date(2026, time.April, 1)},
		{"mid Q3", date(2026, time.August, 30), date(2026, time.July, 1)},
		{"end of Q4", date(2026, time.December, 31), date(2026, time.October, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuarterStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("QuarterStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNextQuarterStart(t *testing.T) {
	got := NextQuarterStart(date(2026, time.November, 15))
	want := date(2027, time.January, 1)
	if !got.Equal(want) {
		t.Errorf("NextQuarterStart = %v, want %v (year rollover)", got, want)
	}
}

func TestBucket(t *testing.T) {
	now := date(2026, time.August, 30) // Q3 2026

	tests := []struct {
		name   string
		target time.Time
		want   string
	}{
		{"yesterday", date(2026, time.August, 29), BucketPast},
		{"earlier this quarter", date(2026, time.July, 5), BucketPast},
		{"last year", date(2025, time.December, 31), BucketPast},
		{"today", date(2026, time.August, 30), BucketThisQuarter},
		{"end of this quarter", date(2026, time.September, 30), BucketThisQuarter},
		{"start of next quarter", date(2026, time.October, 1), BucketNextQuarter},
		{"end of next quarter", date(2026, time.December, 31), BucketNextQuarter},
		{"quarter after next", date(2027, time.January, 1), BucketLater},
		{"far future", date(2028, time.June, 1), BucketLater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bucket(tt.target, now); got != tt.want {
				t.Errorf("Bucket(%v) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestBucketIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2026, time.August, 30, 23, 59, 0, 0, time.UTC)
	target := time.Date(2026, time.August, 30, 0, 1, 0, 0, time.UTC)
	if got := Bucket(target, now); got != BucketThisQuarter {
		t.Errorf("same-day target classified %q, want %q", got, BucketThisQuarter)
	}
}
