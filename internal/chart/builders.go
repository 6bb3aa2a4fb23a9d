package chart

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/chartseries/internal/series"
	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// Build constructs the dataset of the given kind for a ticker's daily series.
func Build(kind Kind, ticker string, s types.Series) (Dataset, error) {
	switch kind {
	case KindCloseLine:
		return CloseLine(ticker, s)
	case KindPriceVolume:
		return PriceVolume(ticker, s)
	case KindMonthlyVolume:
		return MonthlyVolume(ticker, s)
	case KindOHLC:
		return OHLC(ticker, s)
	case KindPercentChange:
		return PercentChange(ticker, s, 0)
	case KindGainLoss:
		return GainLoss(ticker, s, optional.None[float64]())
	case KindMonthlyCandles:
		return MonthlyCandles(ticker, s)
	default:
		return Dataset{}, errors.Newf(errors.ErrCodeUnknownChartKind, "unknown chart kind %q", kind)
	}
}

// CloseLine is the basic close-price line chart dataset.
func CloseLine(ticker string, s types.Series) (Dataset, error) {
	if len(s) == 0 {
		return Dataset{}, errors.New(errors.ErrCodeEmptyInput, "series is empty")
	}

	ds := newDataset(ticker, KindCloseLine, fmt.Sprintf("%s closing price", ticker), []Column{
		{Name: "close", Type: ColumnPrice},
	})

	for _, obs := range s {
		ds.Rows = append(ds.Rows, Row{Time: obs.Time, Values: []optional.Option[float64]{optional.Some(obs.Close)}})
	}

	return ds, nil
}

// PriceVolume is the dual-axis dataset: daily closes alongside daily volume.
// Volume gaps stay explicit so the secondary axis never drops rows.
func PriceVolume(ticker string, s types.Series) (Dataset, error) {
	if len(s) == 0 {
		return Dataset{}, errors.New(errors.ErrCodeEmptyInput, "series is empty")
	}

	ds := newDataset(ticker, KindPriceVolume, fmt.Sprintf("%s price and volume", ticker), []Column{
		{Name: "close", Type: ColumnPrice},
		{Name: "volume", Type: ColumnVolume},
	})

	for _, obs := range s {
		volume := optional.None[float64]()
		if obs.Volume.IsSome() {
			volume = optional.Some(float64(obs.Volume.Unwrap()))
		}

		ds.Rows = append(ds.Rows, Row{Time: obs.Time, Values: []optional.Option[float64]{optional.Some(obs.Close), volume}})
	}

	return ds, nil
}

// MonthlyVolume sums daily volume into calendar-month buckets, dated on the
// first of each month. Feeds the volume bars of the dual-axis chart.
func MonthlyVolume(ticker string, s types.Series) (Dataset, error) {
	buckets, err := series.Aggregate(s, series.MonthBucket, series.SumVolume)
	if err != nil {
		return Dataset{}, err
	}

	ds := newDataset(ticker, KindMonthlyVolume, fmt.Sprintf("%s monthly volume", ticker), []Column{
		{Name: "volume", Type: ColumnVolume},
	})

	for _, bucket := range buckets {
		ds.Rows = append(ds.Rows, Row{Time: bucket.Date, Values: []optional.Option[float64]{optional.Some(float64(bucket.Value))}})
	}

	return ds, nil
}

// OHLC is the multi-series dataset with one column per price field, for
// interactive charts that toggle series on and off. Fields the source did not
// supply stay as explicit gaps.
func OHLC(ticker string, s types.Series) (Dataset, error) {
	if len(s) == 0 {
		return Dataset{}, errors.New(errors.ErrCodeEmptyInput, "series is empty")
	}

	ds := newDataset(ticker, KindOHLC, fmt.Sprintf("%s open/high/low/close", ticker), []Column{
		{Name: "open", Type: ColumnPrice},
		{Name: "high", Type: ColumnPrice},
		{Name: "low", Type: ColumnPrice},
		{Name: "close", Type: ColumnPrice},
	})

	for _, obs := range s {
		ds.Rows = append(ds.Rows, Row{Time: obs.Time, Values: []optional.Option[float64]{
			obs.Open,
			obs.High,
			obs.Low,
			optional.Some(obs.Close),
		}})
	}

	return ds, nil
}

// PercentChange normalizes the series to percent change against the
// observation at baselineIndex.
func PercentChange(ticker string, s types.Series, baselineIndex int) (Dataset, error) {
	normalized, err := series.PercentChange(s, baselineIndex)
	if err != nil {
		return Dataset{}, err
	}

	ds := newDataset(ticker, KindPercentChange, fmt.Sprintf("%s percent change", ticker), []Column{
		{Name: "change", Type: ColumnPercent},
	})

	for _, obs := range normalized {
		ds.Rows = append(ds.Rows, Row{Time: obs.Time, Values: []optional.Option[float64]{optional.Some(obs.Close)}})
	}

	return ds, nil
}

// GainLoss splits the series into stitched gain and loss columns relative to
// the break-even value, for color-coded filled-area rendering.
func GainLoss(ticker string, s types.Series, breakeven optional.Option[float64]) (Dataset, error) {
	gain, loss, err := series.PartitionGainLoss(s, breakeven)
	if err != nil {
		return Dataset{}, err
	}

	ds := newDataset(ticker, KindGainLoss, fmt.Sprintf("%s gain/loss", ticker), []Column{
		{Name: "gain", Type: ColumnPrice},
		{Name: "loss", Type: ColumnPrice},
	})

	for i := range gain {
		ds.Rows = append(ds.Rows, Row{Time: gain[i].Time, Values: []optional.Option[float64]{gain[i].Value, loss[i].Value}})
	}

	return ds, nil
}

// MonthlyCandles aggregates daily closes into calendar-month OHLC candles.
func MonthlyCandles(ticker string, s types.Series) (Dataset, error) {
	candles, err := series.BuildCandles(s, series.MonthBucket)
	if err != nil {
		return Dataset{}, err
	}

	ds := newDataset(ticker, KindMonthlyCandles, fmt.Sprintf("%s monthly candles", ticker), []Column{
		{Name: "open", Type: ColumnPrice},
		{Name: "high", Type: ColumnPrice},
		{Name: "low", Type: ColumnPrice},
		{Name: "close", Type: ColumnPrice},
	})

	for _, candle := range candles {
		ds.Rows = append(ds.Rows, Row{Time: candle.Date, Values: []optional.Option[float64]{
			optional.Some(candle.Open),
			optional.Some(candle.High),
			optional.Some(candle.Low),
			optional.Some(candle.Close),
		}})
	}

	return ds, nil
}
