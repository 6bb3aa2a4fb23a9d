package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/moznion/go-optional"
	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/schollz/progressbar/v3"

	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// PolygonSource fetches daily aggregates from the Polygon REST API.
type PolygonSource struct {
	client     *polygon.Client
	onProgress OnFetchProgress
}

// NewPolygonSource creates a Polygon-backed source. The API key is required.
func NewPolygonSource(apiKey string, onProgress OnFetchProgress) (Source, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "polygon api key is required")
	}

	return &PolygonSource{
		client:     polygon.New(apiKey),
		onProgress: onProgress,
	}, nil
}

// Daily implements Source.
func (s *PolygonSource) Daily(ctx context.Context, ticker string, start, end time.Time) (types.Series, error) {
	totalDays := int(end.Sub(start).Hours()/24) + 1

	bar := progressbar.NewOptions(totalDays,
		progressbar.OptionSetDescription(fmt.Sprintf("Fetching %s", ticker)),
		progressbar.OptionShowCount())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	iter := s.client.ListAggs(ctx, params)

	var result types.Series

	for iter.Next() {
		agg := iter.Item()
		barTime := time.Time(agg.Timestamp).UTC()

		result = append(result, types.Observation{
			Time:   time.Date(barTime.Year(), barTime.Month(), barTime.Day(), 0, 0, 0, 0, time.UTC),
			Open:   optional.Some(agg.Open),
			High:   optional.Some(agg.High),
			Low:    optional.Some(agg.Low),
			Close:  agg.Close,
			Volume: optional.Some(uint64(agg.Volume)),
		})

		s.advanceProgress(bar, barTime, start, totalDays, ticker)
	}

	if iter.Err() != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, iter.Err(), "error iterating polygon aggregates for %s", ticker)
	}

	bar.Finish()

	if err := validateSeries(result, ticker); err != nil {
		return nil, err
	}

	return result, nil
}

// advanceProgress moves the terminal bar to the bar's position in the
// requested range. The callback is optional, the bar advances either way.
func (s *PolygonSource) advanceProgress(bar *progressbar.ProgressBar, barTime, start time.Time, totalDays int, ticker string) {
	daysElapsed := int(barTime.Sub(start).Hours() / 24)
	bar.Set(daysElapsed)

	if s.onProgress != nil {
		s.onProgress(float64(daysElapsed), float64(totalDays), fmt.Sprintf("Fetching %s", ticker))
	}
}
