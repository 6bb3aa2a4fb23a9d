package chart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/chartseries/internal/series"
	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// Summary is the headline figures shown next to a ticker's charts.
type Summary struct {
	Ticker          string          `json:"ticker"`
	Start           time.Time       `json:"start"`
	End             time.Time       `json:"end"`
	Days            int             `json:"days"`
	FirstClose      decimal.Decimal `json:"first_close"`
	LastClose       decimal.Decimal `json:"last_close"`
	PeriodReturnPct decimal.Decimal `json:"period_return_pct"`
	TotalVolume     uint64          `json:"total_volume"`
}

// Summarize computes the period summary for a ticker's daily series.
// Money-facing values are rounded to two decimal places for display.
func Summarize(ticker string, s types.Series) (Summary, error) {
	if len(s) == 0 {
		return Summary{}, errors.New(errors.ErrCodeEmptyInput, "series is empty")
	}

	normalized, err := series.PercentChange(s, 0)
	if err != nil {
		return Summary{}, err
	}

	var totalVolume uint64

	for _, obs := range s {
		if obs.Volume.IsSome() {
			totalVolume += obs.Volume.Unwrap()
		}
	}

	last := len(s) - 1

	return Summary{
		Ticker:          ticker,
		Start:           s[0].Time,
		End:             s[last].Time,
		Days:            len(s),
		FirstClose:      decimal.NewFromFloat(s[0].Close).Round(2),
		LastClose:       decimal.NewFromFloat(s[last].Close).Round(2),
		PeriodReturnPct: decimal.NewFromFloat(normalized[last].Close).Round(2),
		TotalVolume:     totalVolume,
	}, nil
}
