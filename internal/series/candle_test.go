package series

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

type CandleTestSuite struct {
	suite.Suite
}

func TestCandleSuite(t *testing.T) {
	suite.Run(t, new(CandleTestSuite))
}

func (suite *CandleTestSuite) TestMonthlyCandles() {
	s := types.Series{
		{Time: day(2020, 1, 1), Close: 100},
		{Time: day(2020, 1, 2), Close: 110},
		{Time: day(2020, 2, 1), Close: 90},
	}

	candles, err := BuildCandles(s, MonthBucket)
	suite.NoError(err)

	suite.Equal([]types.Candle{
		{Date: day(2020, 1, 1), Open: 100, High: 110, Low: 100, Close: 110},
		{Date: day(2020, 2, 1), Open: 90, High: 90, Low: 90, Close: 90},
	}, candles)
}

func (suite *CandleTestSuite) TestCandleBounds() {
	s := closeSeries(day(2020, 3, 20), 104, 99, 107, 103, 95, 111, 101, 98, 105, 110, 94, 108)

	candles, err := BuildCandles(s, MonthBucket)
	suite.NoError(err)
	suite.NotEmpty(candles)

	for _, c := range candles {
		suite.LessOrEqual(c.Low, c.Open)
		suite.LessOrEqual(c.Low, c.Close)
		suite.LessOrEqual(c.Open, c.High)
		suite.LessOrEqual(c.Close, c.High)
		suite.LessOrEqual(c.Low, c.High)
	}
}

func (suite *CandleTestSuite) TestSingleObservationCandle() {
	s := closeSeries(day(2020, 1, 2), 42)

	candles, err := BuildCandles(s, MonthBucket)
	suite.NoError(err)
	suite.Equal([]types.Candle{{Date: day(2020, 1, 1), Open: 42, High: 42, Low: 42, Close: 42}}, candles)
}

func (suite *CandleTestSuite) TestOpenAndCloseFollowBucketOrder() {
	s := closeSeries(day(2020, 1, 2), 50, 80, 20, 60)

	candles, err := BuildCandles(s, MonthBucket)
	suite.NoError(err)
	suite.Len(candles, 1)
	suite.Equal(50.0, candles[0].Open)
	suite.Equal(60.0, candles[0].Close)
	suite.Equal(80.0, candles[0].High)
	suite.Equal(20.0, candles[0].Low)
}

func (suite *CandleTestSuite) TestEmptySeries() {
	_, err := BuildCandles(types.Series{}, MonthBucket)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyInput))
}

func (suite *CandleTestSuite) TestEmptyBucketGuard() {
	_, err := reduceOHLC(nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyBucket))
}

func (suite *CandleTestSuite) TestWeeklyCandles() {
	// 2021-06-14 is a Monday; ten consecutive days span two ISO weeks.
	s := closeSeries(day(2021, 6, 14), 10, 12, 11, 14, 13, 15, 16, 18, 17, 19)

	candles, err := BuildCandles(s, WeekBucket)
	suite.NoError(err)
	suite.Len(candles, 2)
	suite.Equal(day(2021, 6, 14), candles[0].Date)
	suite.Equal(day(2021, 6, 21), candles[1].Date)
	suite.Equal(10.0, candles[0].Open)
	suite.Equal(16.0, candles[0].Close)
	suite.Equal(18.0, candles[1].Open)
	suite.Equal(19.0, candles[1].Close)
}
