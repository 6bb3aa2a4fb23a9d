package chart

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

type BuildersTestSuite struct {
	suite.Suite
}

func TestBuildersSuite(t *testing.T) {
	suite.Run(t, new(BuildersTestSuite))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dailySeries() types.Series {
	return types.Series{
		{
			Time:   day(2020, 1, 2),
			Open:   optional.Some(99.0),
			High:   optional.Some(101.0),
			Low:    optional.Some(98.0),
			Close:  100,
			Volume: optional.Some(uint64(1000)),
		},
		{
			Time:   day(2020, 1, 3),
			Open:   optional.Some(100.0),
			High:   optional.Some(112.0),
			Low:    optional.Some(100.0),
			Close:  110,
			Volume: optional.Some(uint64(2000)),
		},
		{
			Time:   day(2020, 2, 3),
			Close:  90,
			Volume: optional.Some(uint64(500)),
		},
	}
}

func (suite *BuildersTestSuite) TestCloseLine() {
	ds, err := CloseLine("AAPL", dailySeries())
	suite.NoError(err)

	suite.Equal("AAPL", ds.Ticker)
	suite.Equal(KindCloseLine, ds.Kind)
	suite.Len(ds.Columns, 1)
	suite.Len(ds.Rows, 3)
	suite.Equal(optional.Some(100.0), ds.Rows[0].Values[0])
	suite.Equal(optional.Some(90.0), ds.Rows[2].Values[0])
}

func (suite *BuildersTestSuite) TestPriceVolumeKeepsVolumeGapsExplicit() {
	s := dailySeries()
	s[1].Volume = optional.None[uint64]()

	ds, err := PriceVolume("AAPL", s)
	suite.NoError(err)

	suite.Len(ds.Rows, 3)
	suite.Equal(optional.Some(1000.0), ds.Rows[0].Values[1])
	suite.True(ds.Rows[1].Values[1].IsNone())
	suite.Equal(optional.Some(110.0), ds.Rows[1].Values[0])
}

func (suite *BuildersTestSuite) TestMonthlyVolume() {
	ds, err := MonthlyVolume("AAPL", dailySeries())
	suite.NoError(err)

	suite.Len(ds.Rows, 2)
	suite.Equal(day(2020, 1, 1), ds.Rows[0].Time)
	suite.Equal(optional.Some(3000.0), ds.Rows[0].Values[0])
	suite.Equal(day(2020, 2, 1), ds.Rows[1].Time)
	suite.Equal(optional.Some(500.0), ds.Rows[1].Values[0])
}

func (suite *BuildersTestSuite) TestOHLCMissingFieldsStayGaps() {
	ds, err := OHLC("AAPL", dailySeries())
	suite.NoError(err)

	suite.Len(ds.Columns, 4)
	suite.Equal(optional.Some(99.0), ds.Rows[0].Values[0])

	// Third observation is close-only.
	suite.True(ds.Rows[2].Values[0].IsNone())
	suite.True(ds.Rows[2].Values[1].IsNone())
	suite.True(ds.Rows[2].Values[2].IsNone())
	suite.Equal(optional.Some(90.0), ds.Rows[2].Values[3])
}

func (suite *BuildersTestSuite) TestPercentChange() {
	ds, err := PercentChange("AAPL", dailySeries(), 0)
	suite.NoError(err)

	// Ratio arithmetic: compare with a tolerance, never exactly.
	expected := []float64{0, 10, -10}
	suite.Require().Len(ds.Rows, len(expected))

	for i := range expected {
		suite.Require().True(ds.Rows[i].Values[0].IsSome())
		suite.InDelta(expected[i], ds.Rows[i].Values[0].Unwrap(), 1e-9)
	}
}

func (suite *BuildersTestSuite) TestGainLossColumns() {
	ds, err := GainLoss("AAPL", dailySeries(), optional.None[float64]())
	suite.NoError(err)

	suite.Len(ds.Columns, 2)
	suite.Equal("gain", ds.Columns[0].Name)
	suite.Equal("loss", ds.Columns[1].Name)

	// 100 and 110 at or above the 100 break-even; 90 below, stitched at the
	// crossing so both columns hold the boundary close.
	suite.Equal(optional.Some(100.0), ds.Rows[0].Values[0])
	suite.True(ds.Rows[0].Values[1].IsNone())
	suite.Equal(optional.Some(90.0), ds.Rows[2].Values[0])
	suite.Equal(optional.Some(90.0), ds.Rows[2].Values[1])
}

func (suite *BuildersTestSuite) TestMonthlyCandles() {
	ds, err := MonthlyCandles("AAPL", dailySeries())
	suite.NoError(err)

	suite.Len(ds.Rows, 2)
	suite.Equal(day(2020, 1, 1), ds.Rows[0].Time)
	suite.Equal(optional.Some(100.0), ds.Rows[0].Values[0]) // open
	suite.Equal(optional.Some(110.0), ds.Rows[0].Values[1]) // high
	suite.Equal(optional.Some(100.0), ds.Rows[0].Values[2]) // low
	suite.Equal(optional.Some(110.0), ds.Rows[0].Values[3]) // close
}

func (suite *BuildersTestSuite) TestBuildDispatch() {
	for _, kind := range Kinds() {
		suite.Run(string(kind), func() {
			ds, err := Build(kind, "AAPL", dailySeries())
			suite.NoError(err)
			suite.Equal(kind, ds.Kind)
			suite.NotEmpty(ds.Rows)
			suite.NotEqual("", ds.Title)

			for _, row := range ds.Rows {
				suite.Len(row.Values, len(ds.Columns))
			}
		})
	}
}

func (suite *BuildersTestSuite) TestBuildUnknownKind() {
	_, err := Build(Kind("sparkline"), "AAPL", dailySeries())
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnknownChartKind))
}

func (suite *BuildersTestSuite) TestBuildersRejectEmptySeries() {
	for _, kind := range Kinds() {
		suite.Run(string(kind), func() {
			_, err := Build(kind, "AAPL", types.Series{})
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeEmptyInput))
		})
	}
}

func (suite *BuildersTestSuite) TestRowsAreChronological() {
	ds, err := Build(KindMonthlyCandles, "AAPL", dailySeries())
	suite.NoError(err)

	for i := 1; i < len(ds.Rows); i++ {
		suite.True(ds.Rows[i-1].Time.Before(ds.Rows[i].Time))
	}
}
