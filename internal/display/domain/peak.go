package domain

import (
	"errors"
	"fmt"
)

// HoursPerDay is the number of buckets in a PeakSeries.
const HoursPerDay = 24

var (
	ErrBucketCount   = errors.New("peak series must contain exactly 24 buckets")
	ErrHourRange     = errors.New("bucket hour out of range")
	ErrDuplicateHour = errors.New("duplicate bucket hour")
	ErrNegativeCount = errors.New("bucket count must not be negative")
)

// HourBucket is one hour of day's request count.
type HourBucket struct {
	Hour    int
	Count   int
	Current bool // true for the hour the stats service considers "now"
}

// Validate checks the bucket's hour and count.
func (b HourBucket) Validate() error {
	if b.Hour < 0 || b.Hour >= HoursPerDay {
		return fmt.Errorf("%w: %d", ErrHourRange, b.Hour)
	}
	if b.Count < 0 {
		return fmt.Errorf("%w: hour %d has %d", ErrNegativeCount, b.Hour, b.Count)
	}
	return nil
}

// PeakSeries holds exactly one bucket per hour of day, ordered by hour.
// The zero value is not a valid series; use NewPeakSeries.
type PeakSeries struct {
	buckets [HoursPerDay]HourBucket
}

// NewPeakSeries validates buckets and returns them as a series ordered by hour.
// The input may arrive in any order but must cover every hour exactly once.
func NewPeakSeries(buckets []HourBucket) (PeakSeries, error) {
	if len(buckets) != HoursPerDay {
		return PeakSeries{}, fmt.Errorf("%w: got %d", ErrBucketCount, len(buckets))
	}
	var (
		series PeakSeries
		seen   [HoursPerDay]bool
	)
	for _, b := range buckets {
		if err := b.Validate(); err != nil {
			return PeakSeries{}, err
		}
		if seen[b.Hour] {
			return PeakSeries{}, fmt.Errorf("%w: %d", ErrDuplicateHour, b.Hour)
		}
		seen[b.Hour] = true
		series.buckets[b.Hour] = b
	}
	return series, nil
}

// Buckets returns a copy of the buckets ordered by hour.
func (p PeakSeries) Buckets() []HourBucket {
	out := make([]HourBucket, HoursPerDay)
	copy(out, p.buckets[:])
	return out
}

// Bucket returns the bucket for the given hour.
func (p PeakSeries) Bucket(hour int) (HourBucket, bool) {
	if hour < 0 || hour >= HoursPerDay {
		return HourBucket{}, false
	}
	return p.buckets[hour], true
}
