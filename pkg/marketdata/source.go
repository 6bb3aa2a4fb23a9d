// Package marketdata supplies daily price/volume series for ticker symbols.
// Implementations sit behind the narrow Source interface and guarantee their
// output is ascending by timestamp with no duplicates and a close on every
// observation. Fetch failures, authentication and rate limiting are handled
// here, never by the series transformations.
package marketdata

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/chartseries/internal/logger"
	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// SourceType defines the type of market data source.
type SourceType string

const (
	SourcePolygon SourceType = "polygon"
	SourceBinance SourceType = "binance"
	SourceDuckDB  SourceType = "duckdb"
)

// OnFetchProgress reports fetch progress to the caller.
type OnFetchProgress = func(current float64, total float64, message string)

// Source supplies the daily series for a ticker over a date range.
type Source interface {
	// Daily returns daily observations for the ticker between start and end
	// inclusive, ascending by timestamp. The context can be used to cancel
	// the fetch.
	Daily(ctx context.Context, ticker string, start, end time.Time) (types.Series, error)
}

// Config holds the configuration for creating a market data source.
type Config struct {
	SourceType    SourceType `validate:"required,oneof=polygon binance duckdb"`
	PolygonAPIKey string     `validate:"required_if=SourceType polygon"`
	DataPath      string     `validate:"required_if=SourceType duckdb"`
}

// NewSource creates a market data source from the given configuration.
func NewSource(config Config, log *logger.Logger, onProgress OnFetchProgress) (Source, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid source configuration", err)
	}

	switch config.SourceType {
	case SourcePolygon:
		return NewPolygonSource(config.PolygonAPIKey, onProgress)
	case SourceBinance:
		return NewBinanceSource(onProgress)
	case SourceDuckDB:
		return NewDuckDBSource(config.DataPath, log)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidSource, "unsupported source type: %s", config.SourceType)
	}
}

// validateSeries checks the collaborator contract before a series leaves this
// package.
func validateSeries(s types.Series, ticker string) error {
	if len(s) == 0 {
		return errors.Newf(errors.ErrCodeNoDataFound, "no daily bars for ticker %s", ticker)
	}

	if err := s.Validate(); err != nil {
		return errors.Wrapf(errors.ErrCodeFetchFailed, err, "source returned a malformed series for %s", ticker)
	}

	return nil
}
