package types

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// Observation is a single day of price/volume data for a ticker.
// Close is always populated; the remaining fields are present only when the
// data source supplies full OHLCV bars.
type Observation struct {
	Time   time.Time                `json:"time"`
	Open   optional.Option[float64] `json:"open"`
	High   optional.Option[float64] `json:"high"`
	Low    optional.Option[float64] `json:"low"`
	Close  float64                  `json:"close"`
	Volume optional.Option[uint64]  `json:"volume"`
}

// Series is an ordered sequence of observations, strictly increasing by
// timestamp with no duplicates. Transformations never mutate a series in
// place; they always return new slices.
type Series []Observation

// Validate checks the series ordering invariant: timestamps must be strictly
// increasing, which also rules out duplicates.
func (s Series) Validate() error {
	if len(s) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "series is empty")
	}

	for i := 1; i < len(s); i++ {
		if s[i].Time.Equal(s[i-1].Time) {
			return errors.Newf(errors.ErrCodeDuplicateTimestamp, "duplicate timestamp %s at index %d", s[i].Time.Format("2006-01-02"), i)
		}

		if s[i].Time.Before(s[i-1].Time) {
			return errors.Newf(errors.ErrCodeUnsortedSeries, "timestamp %s at index %d is before its predecessor", s[i].Time.Format("2006-01-02"), i)
		}
	}

	return nil
}

// Closes returns the close prices in series order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, obs := range s {
		closes[i] = obs.Close
	}

	return closes
}

// Times returns the timestamps in series order.
func (s Series) Times() []time.Time {
	times := make([]time.Time, len(s))
	for i, obs := range s {
		times[i] = obs.Time
	}

	return times
}

// Point is a single gap-representable value of a derived series. A None value
// is the explicit missing-value marker handed to the rendering side; missing
// rows are never silently omitted.
type Point struct {
	Time  time.Time                `json:"time"`
	Value optional.Option[float64] `json:"value"`
}

// Candle is the OHLC summary of a single bucket period. Date is the first
// instant of the period.
type Candle struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}
