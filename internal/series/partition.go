package series

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// PartitionGainLoss splits a series into two mutually exclusive sub-series
// relative to a break-even value: closes at or above break-even go to the gain
// series, closes below go to the loss series. The other side holds an explicit
// missing value at that index. When breakeven is None, the first close is used.
//
// After the initial assignment a single forward pass stitches the two series
// together at region boundaries: when the series crosses from one region into
// the other, the boundary close is copied into the vacated series at the
// crossing index only, so two filled-area renderings meet at the crossover
// instead of leaving a gap. Index 0 is never stitched.
//
// The stitch conditions read the series as already modified by earlier
// iterations of the same pass. The rule is intentionally kept literal,
// asymmetries and all; see the partition notes in DESIGN.md.
//
// Returns ErrCodeEmptyInput for an empty series.
func PartitionGainLoss(s types.Series, breakeven optional.Option[float64]) (gain, loss []types.Point, err error) {
	if len(s) == 0 {
		return nil, nil, errors.New(errors.ErrCodeEmptyInput, "cannot partition an empty series")
	}

	be := breakeven.TakeOr(s[0].Close)

	gain = make([]types.Point, len(s))
	loss = make([]types.Point, len(s))

	for i, obs := range s {
		gain[i] = types.Point{Time: obs.Time, Value: optional.None[float64]()}
		loss[i] = types.Point{Time: obs.Time, Value: optional.None[float64]()}

		if obs.Close >= be {
			gain[i].Value = optional.Some(obs.Close)
		} else {
			loss[i].Value = optional.Some(obs.Close)
		}
	}

	// Continuity stitching: one element of lookback, in place.
	for i := 1; i < len(s); i++ {
		if gain[i].Value.IsNone() && loss[i-1].Value.IsNone() {
			gain[i].Value = loss[i].Value
		}

		if loss[i].Value.IsNone() && gain[i-1].Value.IsNone() {
			loss[i].Value = gain[i].Value
		}
	}

	return gain, loss, nil
}
