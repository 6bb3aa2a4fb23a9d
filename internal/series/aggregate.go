package series

import (
	"time"

	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// BucketValue pairs a bucket's representative date with its reduced value.
type BucketValue[R any] struct {
	Date  time.Time `json:"date"`
	Value R         `json:"value"`
}

// ReduceFunc reduces a bucket's full sub-sequence of observations to a single
// value. The sub-sequence keeps the original series order, so reducers may
// rely on "first" and "last" being chronological for sorted input.
type ReduceFunc[R any] func(bucket []types.Observation) (R, error)

// Aggregate groups the series into calendar buckets and reduces each bucket.
// Buckets are emitted in the order their keys first appear, which is
// chronological for sorted input.
//
// Returns ErrCodeEmptyInput for an empty series and
// ErrCodeInvalidBucketFunction when bucketFn fails or yields a zero time.
func Aggregate[R any](s types.Series, bucketFn BucketFunc, reduceFn ReduceFunc[R]) ([]BucketValue[R], error) {
	if len(s) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "cannot aggregate an empty series")
	}

	var order []time.Time

	groups := make(map[int64][]types.Observation)

	for _, obs := range s {
		date, err := bucketFn(obs)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBucketFunction, "bucket function failed", err)
		}

		if date.IsZero() {
			return nil, errors.Newf(errors.ErrCodeInvalidBucketFunction, "bucket function returned an unmappable date for %s", obs.Time.Format("2006-01-02"))
		}

		key := date.UnixNano()
		if _, seen := groups[key]; !seen {
			order = append(order, date)
		}

		groups[key] = append(groups[key], obs)
	}

	result := make([]BucketValue[R], 0, len(order))

	for _, date := range order {
		value, err := reduceFn(groups[date.UnixNano()])
		if err != nil {
			return nil, err
		}

		result = append(result, BucketValue[R]{Date: date, Value: value})
	}

	return result, nil
}

// SumVolume reduces a bucket to the sum of its present volumes. Observations
// without a volume contribute nothing.
func SumVolume(bucket []types.Observation) (uint64, error) {
	var total uint64

	for _, obs := range bucket {
		if obs.Volume.IsSome() {
			total += obs.Volume.Unwrap()
		}
	}

	return total, nil
}
