package series

import (
	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// PercentChange rescales a price series to percent change relative to the
// observation at baselineIndex: (close/baseline - 1) * 100. Timestamps and
// ordering are preserved; the output close values are percentages, not
// prices, and the OHLC/volume fields are cleared.
//
// Applying PercentChange to an already-normalized series with baseline 0 is a
// no-op only when the baseline value itself is 0 (a percent change of 0 stays
// 0). That is expected behavior, not a bug.
//
// Returns ErrCodeIndexOutOfRange when baselineIndex is not a valid index and
// ErrCodeDivisionByZero when the baseline close is 0.
func PercentChange(s types.Series, baselineIndex int) (types.Series, error) {
	if len(s) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "cannot normalize an empty series")
	}

	if baselineIndex < 0 || baselineIndex >= len(s) {
		return nil, errors.Newf(errors.ErrCodeIndexOutOfRange, "baseline index %d out of range for series of length %d", baselineIndex, len(s))
	}

	baseline := s[baselineIndex].Close
	if baseline == 0 {
		return nil, errors.Newf(errors.ErrCodeDivisionByZero, "baseline close at index %d is zero", baselineIndex)
	}

	result := make(types.Series, len(s))
	for i, obs := range s {
		result[i] = types.Observation{
			Time:  obs.Time,
			Close: (obs.Close/baseline - 1) * 100,
		}
	}

	return result, nil
}
