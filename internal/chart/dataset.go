// Package chart builds renderer-ready datasets from a daily price/volume
// series. A dataset is a plain ordered table: every column is typed, every row
// is present, and gaps are explicit missing values. The package owns no rendering
// code; a charting front-end consumes datasets as-is.
package chart

import (
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
)

// Kind identifies one of the supported chart datasets.
type Kind string

const (
	KindCloseLine      Kind = "close_line"
	KindPriceVolume    Kind = "price_volume"
	KindMonthlyVolume  Kind = "monthly_volume"
	KindOHLC           Kind = "ohlc"
	KindPercentChange  Kind = "percent_change"
	KindGainLoss       Kind = "gain_loss"
	KindMonthlyCandles Kind = "monthly_candles"
)

// Kinds lists every supported dataset kind.
func Kinds() []Kind {
	return []Kind{
		KindCloseLine,
		KindPriceVolume,
		KindMonthlyVolume,
		KindOHLC,
		KindPercentChange,
		KindGainLoss,
		KindMonthlyCandles,
	}
}

// ColumnType is the value type of a dataset column.
type ColumnType string

const (
	ColumnPrice   ColumnType = "price"
	ColumnPercent ColumnType = "percent"
	ColumnVolume  ColumnType = "volume"
)

// Column describes one value column of a dataset.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Row is one dated row of a dataset. Values align with the dataset's columns;
// a None value is the explicit gap marker.
type Row struct {
	Time   time.Time                  `json:"time"`
	Values []optional.Option[float64] `json:"values"`
}

// Dataset is the renderer hand-off: a titled, fully ordered table for one
// ticker and chart kind.
type Dataset struct {
	ID      uuid.UUID `json:"id"`
	Ticker  string    `json:"ticker"`
	Kind    Kind      `json:"kind"`
	Title   string    `json:"title"`
	Columns []Column  `json:"columns"`
	Rows    []Row     `json:"rows"`
}

func newDataset(ticker string, kind Kind, title string, columns []Column) Dataset {
	return Dataset{
		ID:      uuid.New(),
		Ticker:  ticker,
		Kind:    kind,
		Title:   title,
		Columns: columns,
		Rows:    nil,
	}
}
