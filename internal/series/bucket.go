// Package series implements the stateless transformations that turn a raw
// daily price/volume series into the derived series chart datasets are built
// from: calendar-bucket aggregation, percent-change normalization, gain/loss
// partitioning and OHLC candle aggregation.
package series

import (
	"time"

	"github.com/rxtech-lab/chartseries/internal/types"
)

// BucketFunc maps an observation to the representative date of its bucket.
// The representative date is the first instant of the bucket period, so that
// sorted input maps to chronologically sorted bucket dates.
type BucketFunc func(obs types.Observation) (time.Time, error)

// DayBucket buckets observations by calendar day.
func DayBucket(obs types.Observation) (time.Time, error) {
	t := obs.Time

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
}

// WeekBucket buckets observations by ISO week, represented by the week's Monday.
func WeekBucket(obs types.Observation) (time.Time, error) {
	t := obs.Time

	offset := (int(t.Weekday()) + 6) % 7 // days since Monday
	monday := t.AddDate(0, 0, -offset)

	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location()), nil
}

// MonthBucket buckets observations by calendar month, represented by the first
// day of the month.
func MonthBucket(obs types.Observation) (time.Time, error) {
	t := obs.Time

	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()), nil
}

// YearBucket buckets observations by calendar year, represented by January 1st.
func YearBucket(obs types.Observation) (time.Time, error) {
	t := obs.Time

	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location()), nil
}
