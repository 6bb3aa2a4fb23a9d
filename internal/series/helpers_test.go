package series

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/chartseries/internal/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// closeSeries builds a close-only series on consecutive days starting at start.
func closeSeries(start time.Time, closes ...float64) types.Series {
	s := make(types.Series, len(closes))
	for i, c := range closes {
		s[i] = types.Observation{Time: start.AddDate(0, 0, i), Close: c}
	}

	return s
}

func obsOn(t time.Time, close float64, volume uint64) types.Observation {
	return types.Observation{Time: t, Close: close, Volume: optional.Some(volume)}
}
