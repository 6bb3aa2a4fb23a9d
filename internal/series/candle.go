package series

import (
	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// BuildCandles reduces each bucket of the series to an OHLC candle built from
// close prices: open is the first close in the bucket, close the last, high
// and low the maximum and minimum.
//
// Precondition: the input series must be in chronological order so "first"
// and "last" are well defined per bucket. Unsorted input yields undefined
// open/close values without erroring.
func BuildCandles(s types.Series, bucketFn BucketFunc) ([]types.Candle, error) {
	buckets, err := Aggregate(s, bucketFn, reduceOHLC)
	if err != nil {
		return nil, err
	}

	candles := make([]types.Candle, len(buckets))
	for i, bucket := range buckets {
		candles[i] = bucket.Value
		candles[i].Date = bucket.Date
	}

	return candles, nil
}

func reduceOHLC(bucket []types.Observation) (types.Candle, error) {
	if len(bucket) == 0 {
		return types.Candle{}, errors.New(errors.ErrCodeEmptyBucket, "bucket has no observations")
	}

	candle := types.Candle{
		Open:  bucket[0].Close,
		High:  bucket[0].Close,
		Low:   bucket[0].Close,
		Close: bucket[len(bucket)-1].Close,
	}

	for _, obs := range bucket[1:] {
		if obs.Close > candle.High {
			candle.High = obs.Close
		}

		if obs.Close < candle.Low {
			candle.Low = obs.Close
		}
	}

	return candle, nil
}
