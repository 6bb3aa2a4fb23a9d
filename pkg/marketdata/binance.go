package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// binancePageSize is the maximum number of klines Binance returns per request.
const binancePageSize = 500

// BinanceSource fetches daily klines from the public Binance REST API.
// No API key is needed for historical klines.
type BinanceSource struct {
	client     *binance.Client
	onProgress OnFetchProgress
}

// NewBinanceSource creates a Binance-backed source.
func NewBinanceSource(onProgress OnFetchProgress) (Source, error) {
	return &BinanceSource{
		client:     binance.NewClient("", ""),
		onProgress: onProgress,
	}, nil
}

// Daily implements Source. Binance paginates klines, so the fetch walks pages
// using the close time of the last kline as the next start.
func (s *BinanceSource) Daily(ctx context.Context, ticker string, start, end time.Time) (types.Series, error) {
	startMillis := start.UnixMilli()
	endMillis := end.UnixMilli()
	currentStart := startMillis

	var result types.Series

	for {
		klines, err := s.client.NewKlinesService().
			Symbol(ticker).
			Interval("1d").
			StartTime(currentStart).
			EndTime(endMillis).
			Limit(binancePageSize).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to fetch klines for %s", ticker)
		}

		if s.onProgress != nil {
			s.onProgress(float64(currentStart-startMillis), float64(endMillis-startMillis), fmt.Sprintf("Fetching %s klines", ticker))
		}

		for _, kline := range klines {
			obs, err := klineToObservation(kline)
			if err != nil {
				return nil, err
			}

			result = append(result, obs)
		}

		if len(klines) < binancePageSize {
			break
		}

		// Next page starts 1ms after the last kline closes to avoid duplicates.
		currentStart = klines[len(klines)-1].CloseTime + 1
		if currentStart >= endMillis {
			break
		}
	}

	if err := validateSeries(result, ticker); err != nil {
		return nil, err
	}

	return result, nil
}

func klineToObservation(kline *binance.Kline) (types.Observation, error) {
	open, err := strconv.ParseFloat(kline.Open, 64)
	if err != nil {
		return types.Observation{}, errors.Wrap(errors.ErrCodeParseFailed, "failed to parse kline open", err)
	}

	high, err := strconv.ParseFloat(kline.High, 64)
	if err != nil {
		return types.Observation{}, errors.Wrap(errors.ErrCodeParseFailed, "failed to parse kline high", err)
	}

	low, err := strconv.ParseFloat(kline.Low, 64)
	if err != nil {
		return types.Observation{}, errors.Wrap(errors.ErrCodeParseFailed, "failed to parse kline low", err)
	}

	closePrice, err := strconv.ParseFloat(kline.Close, 64)
	if err != nil {
		return types.Observation{}, errors.Wrap(errors.ErrCodeParseFailed, "failed to parse kline close", err)
	}

	volume, err := strconv.ParseFloat(kline.Volume, 64)
	if err != nil {
		return types.Observation{}, errors.Wrap(errors.ErrCodeParseFailed, "failed to parse kline volume", err)
	}

	openTime := time.UnixMilli(kline.OpenTime).UTC()

	return types.Observation{
		Time:   time.Date(openTime.Year(), openTime.Month(), openTime.Day(), 0, 0, 0, 0, time.UTC),
		Open:   optional.Some(open),
		High:   optional.Some(high),
		Low:    optional.Some(low),
		Close:  closePrice,
		Volume: optional.Some(uint64(volume)),
	}, nil
}
